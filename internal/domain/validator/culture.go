package validator

import (
	"strings"

	"github.com/openkraft/csvcheck/internal/domain"
)

const cultureColumn = "culture"

// CultureValidator checks the culture column against known culture codes.
// Culture is single-valued: piped values are reported separately from
// plain invalid codes.
type CultureValidator struct {
	oracle domain.LocaleOracle
	cols   columns
	state  cultureState
}

type cultureState struct {
	blankRows   int
	pipeRows    int
	invalidRows int
	invalid     orderedSet
}

// NewCultureValidator creates a culture validator backed by oracle.
func NewCultureValidator(oracle domain.LocaleOracle, opts domain.Options) *CultureValidator {
	v := &CultureValidator{oracle: oracle}
	v.Configure(opts)
	return v
}

func (v *CultureValidator) Title() string { return "Culture Check" }

// AppliesTo is true for every source type.
func (v *CultureValidator) AppliesTo(domain.SourceType) bool { return true }

func (v *CultureValidator) Configure(opts domain.Options) {
	v.cols = newColumns(cultureColumn, opts.RequiredColumns)
	v.state = cultureState{}
}

func (v *CultureValidator) Reset() {
	v.cols.reset()
	v.state = cultureState{}
}

func (v *CultureValidator) ObserveHeader(header []string) {
	v.cols.observe(header)
}

func (v *CultureValidator) TestRow(header, row []string) bool {
	if !v.cols.next(header) {
		return false
	}

	value := v.cols.value(cultureColumn, row)
	if isBlank(value) {
		v.state.blankRows++
		return true
	}

	if v.oracle.IsValidCulture(value) {
		return true
	}

	v.state.invalid.add(value)
	v.cols.appendToCsvRowList()

	// A leading pipe is not treated as a multi-value separator.
	if strings.Index(value, "|") > 0 {
		v.state.pipeRows++
	} else {
		v.state.invalidRows++
	}
	return true
}

func (v *CultureValidator) TestResult() *domain.TestResult {
	r := domain.NewTestResult(v.Title())

	if !v.cols.columnPresent(cultureColumn) {
		r.SetStatusWarn()
		r.AddResult("'culture' column not present in file.")
		r.AddResult("Rows without a valid culture value will be imported using AtoM's default source culture.")
		v.cols.addColumnHints(r, cultureColumn)
		return r
	}

	if v.cols.columnDuplicated(cultureColumn) {
		appendDuplicatedColumnError(r, cultureColumn)
		return r
	}

	s := v.state

	if s.blankRows > 0 {
		r.SetStatusWarn()
		r.AddResult("Rows with blank culture value: %d", s.blankRows)
	}

	if s.invalidRows > 0 {
		r.SetStatusError()
		r.AddResult("Rows with invalid culture values: %d", s.invalidRows)
	}

	if s.pipeRows > 0 {
		r.SetStatusError()
		r.AddResult("Rows with pipe character in culture values: %d", s.pipeRows)
		r.AddResult("'culture' column does not allow for multiple values separated with a pipe '|' character.")
	}

	if s.invalidRows > 0 || s.pipeRows > 0 {
		r.AddResult("Invalid culture values: %s", s.invalid.join(", "))
	}

	if s.blankRows > 0 || s.invalidRows > 0 {
		r.AddResult("Rows with a blank culture value will be imported using AtoM's default source culture.")
	}

	if s.blankRows == 0 && s.invalidRows == 0 && s.pipeRows == 0 {
		r.AddResult("'culture' column values are all valid.")
	}

	v.cols.addRowListDetail(r)
	return r
}
