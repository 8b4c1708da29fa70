// Package validator implements the CSV column validators run against every
// row of an import file.
package validator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/openkraft/csvcheck/internal/domain"
)

// columns is the bookkeeping shared by every validator: required columns,
// header analysis, the data-row counter and the list of rows with issues.
// Validators embed it by value and reset it together with their scan state.
type columns struct {
	required []string

	header     []string
	observed   bool
	counts     map[string]int
	rowNumber  int
	csvRowList []int
}

func newColumns(own string, extra []string) columns {
	return columns{required: mergeColumns(own, extra)}
}

// mergeColumns returns own followed by extra, without duplicates.
func mergeColumns(own string, extra []string) []string {
	out := []string{own}
	seen := map[string]bool{own: true}
	for _, c := range extra {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// reset clears per-file state, keeping the required column list.
func (c *columns) reset() {
	*c = columns{required: c.required}
}

// observe analyzes the header once per file.
func (c *columns) observe(header []string) {
	if c.observed {
		return
	}
	c.observed = true
	c.header = append([]string(nil), header...)
	c.counts = make(map[string]int, len(header))
	for _, name := range header {
		c.counts[name]++
	}
}

// next advances the row counter and reports whether every required column
// is present exactly once.
func (c *columns) next(header []string) bool {
	c.observe(header)
	c.rowNumber++
	for _, name := range c.required {
		if !c.columnPresent(name) || c.columnDuplicated(name) {
			return false
		}
	}
	return true
}

func (c *columns) columnPresent(name string) bool {
	return c.counts[name] > 0
}

// columnPresentIn tests membership in a row-scoped header.
func columnPresentIn(name string, header []string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

func (c *columns) columnDuplicated(name string) bool {
	return c.counts[name] > 1
}

// appendToCsvRowList records the current data row as having an issue.
func (c *columns) appendToCsvRowList() {
	c.csvRowList = append(c.csvRowList, c.rowNumber)
}

// value returns the cell for name, or "" when the row is short.
func (c *columns) value(name string, row []string) string {
	for i, h := range c.header {
		if h != name {
			continue
		}
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return ""
}

func (c *columns) addRowListDetail(r *domain.TestResult) {
	if len(c.csvRowList) == 0 {
		return
	}
	rows := make([]string, len(c.csvRowList))
	for i, n := range c.csvRowList {
		rows[i] = strconv.Itoa(n)
	}
	r.AddDetail("CSV row numbers where issues were found: %s", strings.Join(rows, ", "))
}

func appendDuplicatedColumnError(r *domain.TestResult, name string) {
	r.SetStatusError()
	r.AddResult("'%s' column appears more than once in file.", name)
	r.AddResult("Unable to validate because of duplicated columns in CSV.")
}

// addColumnHints reports header columns that look like a misspelling of
// the missing column name.
func (c *columns) addColumnHints(r *domain.TestResult, name string) {
	want := normalizeColumn(name)
	for _, h := range c.header {
		if h == name {
			continue
		}
		if !strings.EqualFold(h, name) && normalizeColumn(h) != want {
			continue
		}
		r.AddDetail("Column '%s' may be intended as '%s'; column names are case sensitive.", h, name)
	}
}

// normalizeColumn folds camelCase, snake_case and spaced spellings of a
// column name to lowercase words joined by underscores, so
// "digitalObjectPath" and "Digital Object Path" compare equal.
func normalizeColumn(name string) string {
	var words []string
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		for _, w := range camelcase.Split(f) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "_")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
