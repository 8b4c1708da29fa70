package domain

import "fmt"

// Status is the severity level of a validator's findings for one file.
type Status string

const (
	StatusPass  Status = "pass"
	StatusWarn  Status = "warn"
	StatusError Status = "error"
)

// Rank orders statuses by severity. Unknown values rank as pass.
func (s Status) Rank() int {
	switch s {
	case StatusWarn:
		return 1
	case StatusError:
		return 2
	default:
		return 0
	}
}

// Worse returns the more severe of s and other.
func (s Status) Worse(other Status) Status {
	if other.Rank() > s.Rank() {
		return other
	}
	if s == "" {
		return StatusPass
	}
	return s
}

// TestResult is the outcome of one validator's pass over one CSV file.
// Status only ever escalates: pass -> warn -> error.
type TestResult struct {
	Title   string   `json:"title"`
	Status  Status   `json:"status"`
	Results []string `json:"results"`
	Details []string `json:"details"`
}

// NewTestResult creates an empty passing result for the named validator.
func NewTestResult(title string) *TestResult {
	return &TestResult{
		Title:   title,
		Status:  StatusPass,
		Results: []string{},
		Details: []string{},
	}
}

// SetStatusWarn raises the status to warn unless it is already error.
func (r *TestResult) SetStatusWarn() {
	r.Status = r.Status.Worse(StatusWarn)
}

// SetStatusError raises the status to error.
func (r *TestResult) SetStatusError() {
	r.Status = r.Status.Worse(StatusError)
}

// AddResult appends a summary line.
func (r *TestResult) AddResult(format string, args ...any) {
	r.Results = append(r.Results, fmt.Sprintf(format, args...))
}

// AddDetail appends a finer-grained line, typically one per offending value.
func (r *TestResult) AddDetail(format string, args ...any) {
	r.Details = append(r.Details, fmt.Sprintf(format, args...))
}
