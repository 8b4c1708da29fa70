package validator

import "github.com/openkraft/csvcheck/internal/domain"

// Names lists validator identifiers in run order.
func Names() []string {
	return []string{"culture", "language", "digital_object_path"}
}

// Set is an ordered, named collection of validators for one file.
type Set struct {
	opts       domain.Options
	names      []string
	validators []domain.RowValidator
}

// NewDefaultSet builds the culture, language and digital object validators.
func NewDefaultSet(oracle domain.LocaleOracle, fsys domain.FileSystem, opts domain.Options) *Set {
	return &Set{
		opts:  opts,
		names: Names(),
		validators: []domain.RowValidator{
			NewCultureValidator(oracle, opts),
			NewLanguageValidator(oracle, opts),
			NewDigitalObjectPathValidator(fsys, opts),
		},
	}
}

// Clone returns a set with fresh scan state. Folder listings are shared
// with the receiver rather than enumerated again.
func (s *Set) Clone() *Set {
	out := &Set{opts: s.opts, names: append([]string(nil), s.names...)}
	for _, v := range s.validators {
		switch tv := v.(type) {
		case *DigitalObjectPathValidator:
			out.validators = append(out.validators, tv.Clone())
		case *CultureValidator:
			out.validators = append(out.validators, NewCultureValidator(tv.oracle, s.opts))
		case *LanguageValidator:
			out.validators = append(out.validators, &LanguageValidator{
				languages: tv.languages,
				cols:      newColumns(languageColumn, s.opts.RequiredColumns),
			})
		}
	}
	return out
}

// Active returns the validators that apply to source and are not skipped.
func (s *Set) Active(source domain.SourceType, skipped func(name string) bool) []domain.RowValidator {
	var out []domain.RowValidator
	for i, v := range s.validators {
		if skipped != nil && skipped(s.names[i]) {
			continue
		}
		if !v.AppliesTo(source) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DigitalObjects returns the set's digital object validator, if any.
func (s *Set) DigitalObjects() *DigitalObjectPathValidator {
	for _, v := range s.validators {
		if dv, ok := v.(*DigitalObjectPathValidator); ok {
			return dv
		}
	}
	return nil
}

// Describe returns each validator's identifier, title and applicable sources.
func (s *Set) Describe() []Description {
	out := make([]Description, 0, len(s.validators))
	for i, v := range s.validators {
		d := Description{Name: s.names[i], Title: v.Title()}
		for _, src := range domain.ValidSourceTypes {
			if v.AppliesTo(src) {
				d.Sources = append(d.Sources, src)
			}
		}
		out = append(out, d)
	}
	return out
}

// Description summarizes one validator for listings.
type Description struct {
	Name    string              `json:"name"`
	Title   string              `json:"title"`
	Sources []domain.SourceType `json:"sources"`
}
