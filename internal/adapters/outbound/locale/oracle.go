// Package locale provides domain.LocaleOracle implementations.
package locale

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/openkraft/csvcheck/internal/domain"
)

// cultureForm is the only spelling the importer accepts: a lowercase base
// language with an optional uppercase region, joined by '_'.
var cultureForm = regexp.MustCompile(`^[a-z]{2,3}(_[A-Z]{2})?$`)

// bibliographicCodes maps ISO 639-2/B codes to the two-letter code of the
// same language. x/text only knows the terminology (/T) forms.
var bibliographicCodes = map[string]string{
	"alb": "sq", "arm": "hy", "baq": "eu", "bur": "my", "chi": "zh",
	"cze": "cs", "dut": "nl", "fre": "fr", "geo": "ka", "ger": "de",
	"gre": "el", "ice": "is", "mac": "mk", "mao": "mi", "may": "ms",
	"per": "fa", "rum": "ro", "slo": "sk", "tib": "bo", "wel": "cy",
}

// XTextOracle validates codes against the CLDR data shipped with
// golang.org/x/text. Known languages are the base languages with display
// names as ISO 639-1 codes and ISO 639-2 codes in both /T and /B forms.
type XTextOracle struct {
	once      sync.Once
	languages map[string]bool
}

// NewXText creates an XTextOracle. The language table is built on first use.
func NewXText() *XTextOracle {
	return &XTextOracle{}
}

func (o *XTextOracle) load() {
	o.once.Do(func() {
		o.languages = make(map[string]bool)
		for _, b := range display.Supported.BaseLanguages() {
			code := b.String()
			if code == "" || code == "und" {
				continue
			}
			o.languages[code] = true
			if iso3 := b.ISO3(); iso3 != "" {
				o.languages[iso3] = true
			}
		}
		for b, code := range bibliographicCodes {
			if o.languages[code] {
				o.languages[b] = true
			}
		}
	})
}

// IsValidCulture accepts cultures written as "ll" or "ll_RR" whose
// language is known and whose region, if any, is a country. The code must
// already be canonical: deprecated or aliased subtags are rejected.
func (o *XTextOracle) IsValidCulture(code string) bool {
	if !cultureForm.MatchString(code) {
		return false
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return false
	}
	if strings.ReplaceAll(tag.String(), "-", "_") != code {
		return false
	}

	base, _ := tag.Base()
	o.load()
	if !o.languages[base.String()] {
		return false
	}
	if strings.Contains(code, "_") {
		region, _ := tag.Region()
		return region.IsCountry() && region.String() != "ZZ"
	}
	return true
}

// KnownLanguageCodes returns a copy of the known language code set.
func (o *XTextOracle) KnownLanguageCodes() map[string]bool {
	o.load()
	return copySet(o.languages)
}

// StaticOracle validates against fixed lists of codes.
type StaticOracle struct {
	cultures  map[string]bool
	languages map[string]bool
}

// NewStatic creates an oracle accepting exactly the given codes.
func NewStatic(cultures, languages []string) *StaticOracle {
	return &StaticOracle{cultures: toSet(cultures), languages: toSet(languages)}
}

func (o *StaticOracle) IsValidCulture(code string) bool { return o.cultures[code] }

func (o *StaticOracle) KnownLanguageCodes() map[string]bool { return copySet(o.languages) }

// WithExtras returns an oracle that also accepts the given culture and
// language codes. It returns base unchanged when both lists are empty.
func WithExtras(base domain.LocaleOracle, cultures, languages []string) domain.LocaleOracle {
	if len(cultures) == 0 && len(languages) == 0 {
		return base
	}
	return &extendedOracle{base: base, cultures: toSet(cultures), languages: toSet(languages)}
}

type extendedOracle struct {
	base      domain.LocaleOracle
	cultures  map[string]bool
	languages map[string]bool
}

func (o *extendedOracle) IsValidCulture(code string) bool {
	return o.cultures[code] || o.base.IsValidCulture(code)
}

func (o *extendedOracle) KnownLanguageCodes() map[string]bool {
	out := o.base.KnownLanguageCodes()
	for code := range o.languages {
		out[code] = true
	}
	return out
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
