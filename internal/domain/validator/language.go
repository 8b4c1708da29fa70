package validator

import (
	"strings"

	"github.com/openkraft/csvcheck/internal/domain"
)

const languageColumn = "language"

// LanguageValidator checks the language column. Cells may hold several
// codes separated by '|'; each is validated on its own.
type LanguageValidator struct {
	languages map[string]bool
	cols      columns
	state     languageState
}

type languageState struct {
	invalidRows int
	invalid     orderedSet
}

// NewLanguageValidator creates a language validator. The known language
// codes are read from oracle once, here.
func NewLanguageValidator(oracle domain.LocaleOracle, opts domain.Options) *LanguageValidator {
	v := &LanguageValidator{languages: oracle.KnownLanguageCodes()}
	v.Configure(opts)
	return v
}

func (v *LanguageValidator) Title() string { return "Language Check" }

func (v *LanguageValidator) AppliesTo(source domain.SourceType) bool {
	return source == domain.SourceInformationObject || source == domain.SourceRepository
}

func (v *LanguageValidator) Configure(opts domain.Options) {
	v.cols = newColumns(languageColumn, opts.RequiredColumns)
	v.state = languageState{}
}

func (v *LanguageValidator) Reset() {
	v.cols.reset()
	v.state = languageState{}
}

func (v *LanguageValidator) ObserveHeader(header []string) {
	v.cols.observe(header)
}

func (v *LanguageValidator) TestRow(header, row []string) bool {
	if !v.cols.next(header) {
		return false
	}

	cell := v.cols.value(languageColumn, row)
	if isBlank(cell) {
		return true
	}

	rowCounted := false
	for _, value := range strings.Split(cell, "|") {
		value = strings.TrimSpace(value)
		if v.isLanguageValid(value) {
			continue
		}

		if !rowCounted {
			v.state.invalidRows++
			v.cols.appendToCsvRowList()
			rowCounted = true
		}
		v.state.invalid.add(value)
	}
	return true
}

func (v *LanguageValidator) isLanguageValid(code string) bool {
	if code == "" {
		return false
	}
	return v.languages[code]
}

func (v *LanguageValidator) TestResult() *domain.TestResult {
	r := domain.NewTestResult(v.Title())

	if !v.cols.columnPresent(languageColumn) {
		r.AddResult("'language' column not present in file.")
		v.cols.addColumnHints(r, languageColumn)
		return r
	}

	if v.cols.columnDuplicated(languageColumn) {
		appendDuplicatedColumnError(r, languageColumn)
		return r
	}

	if v.state.invalidRows > 0 {
		r.SetStatusError()
		r.AddResult("Rows with invalid language values: %d", v.state.invalidRows)
		r.AddResult("Invalid language values: %s", v.state.invalid.join(", "))
	} else {
		r.AddResult("'language' column values are all valid.")
	}

	v.cols.addRowListDetail(r)
	return r
}
