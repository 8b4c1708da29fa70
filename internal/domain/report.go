package domain

import (
	"sort"
	"time"
)

// FileReport collects every validator's result for one CSV file.
type FileReport struct {
	Filename string        `json:"filename"`
	Source   SourceType    `json:"source"`
	Rows     int           `json:"rows"`
	Results  []*TestResult `json:"results"`
}

// NewFileReport creates an empty report for filename.
func NewFileReport(filename string, source SourceType) *FileReport {
	return &FileReport{
		Filename: filename,
		Source:   source,
		Results:  []*TestResult{},
	}
}

// Add appends a finalized validator result.
func (f *FileReport) Add(r *TestResult) {
	f.Results = append(f.Results, r)
}

// Status returns the worst status across the file's results.
func (f *FileReport) Status() Status {
	status := StatusPass
	for _, r := range f.Results {
		status = status.Worse(r.Status)
	}
	return status
}

// Sorted returns the results ordered by severity, errors first.
// Results with equal severity keep their validator order.
func (f *FileReport) Sorted() []*TestResult {
	sorted := make([]*TestResult, len(f.Results))
	copy(sorted, f.Results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Status.Rank() > sorted[j].Status.Rank()
	})
	return sorted
}

// Report accumulates file reports across one validation run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Files     []*FileReport `json:"files"`
}

// NewReport creates an empty report for the given run.
func NewReport(runID string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: startedAt,
		Files:     []*FileReport{},
	}
}

// Add appends a file report.
func (r *Report) Add(f *FileReport) {
	r.Files = append(r.Files, f)
}

// Status returns the worst status across all files.
func (r *Report) Status() Status {
	status := StatusPass
	for _, f := range r.Files {
		status = status.Worse(f.Status())
	}
	return status
}

// Counts returns the number of validator results per status.
func (r *Report) Counts() map[Status]int {
	counts := map[Status]int{
		StatusPass:  0,
		StatusWarn:  0,
		StatusError: 0,
	}
	for _, f := range r.Files {
		for _, res := range f.Results {
			counts[res.Status.Worse(StatusPass)]++
		}
	}
	return counts
}

// Sorted returns a copy of the report whose file results are ordered by
// severity. The receiver is not modified.
func (r *Report) Sorted() *Report {
	out := &Report{
		RunID:     r.RunID,
		StartedAt: r.StartedAt,
		Files:     make([]*FileReport, 0, len(r.Files)),
	}
	for _, f := range r.Files {
		out.Files = append(out.Files, &FileReport{
			Filename: f.Filename,
			Source:   f.Source,
			Rows:     f.Rows,
			Results:  f.Sorted(),
		})
	}
	return out
}

// ReportEntry is a condensed report stored in the run history.
type ReportEntry struct {
	RunID     string         `json:"run_id"`
	Timestamp string         `json:"timestamp"`
	Files     []string       `json:"files"`
	Status    Status         `json:"status"`
	Counts    map[Status]int `json:"counts"`
}

// Entry condenses the report for the history store.
func (r *Report) Entry() ReportEntry {
	files := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, f.Filename)
	}
	return ReportEntry{
		RunID:     r.RunID,
		Timestamp: r.StartedAt.UTC().Format(time.RFC3339),
		Files:     files,
		Status:    r.Status(),
		Counts:    r.Counts(),
	}
}
