package domain

import "sort"

// RowSource supplies a CSV header followed by successive data rows.
// Next returns io.EOF once the stream is exhausted.
type RowSource interface {
	Header() ([]string, error)
	Next() ([]string, error)
}

// SourceOpener opens a CSV file as a RowSource. Sources that also
// implement io.Closer are closed by the caller.
type SourceOpener interface {
	Open(path string) (RowSource, error)
}

// LocaleOracle answers whether culture and language codes are known.
type LocaleOracle interface {
	IsValidCulture(code string) bool
	KnownLanguageCodes() map[string]bool
}

// FileSystem enumerates and checks files under a digital object folder.
type FileSystem interface {
	ListFiles(root string) (*FileListing, error)
	Exists(root, relativePath string) bool
	// ResolveCanonicalPath returns the absolute, symlink-free form of path
	// when it names an existing directory.
	ResolveCanonicalPath(path string) (string, bool)
}

// FileListing is the recursive file enumeration of a digital object folder.
// Files are relative, slash-separated and sorted.
type FileListing struct {
	Root       string   `json:"root"`
	Files      []string `json:"files"`
	TotalBytes int64    `json:"total_bytes"`
}

// Contains reports whether rel is part of the listing.
func (l *FileListing) Contains(rel string) bool {
	if l == nil {
		return false
	}
	i := sort.SearchStrings(l.Files, rel)
	return i < len(l.Files) && l.Files[i] == rel
}

// RowValidator is implemented by every CSV column validator.
//
// A validator instance holds per-file scan state: callers must Reset it
// between files and must not share one instance between files validated
// concurrently.
type RowValidator interface {
	Title() string
	AppliesTo(source SourceType) bool
	Configure(opts Options)
	Reset()
	ObserveHeader(header []string)
	// TestRow returns false when the row was not examined because a
	// required column is missing or duplicated.
	TestRow(header, row []string) bool
	TestResult() *TestResult
}

// Options configures a RowValidator.
type Options struct {
	// RequiredColumns lists columns required in addition to the
	// validator's own column.
	RequiredColumns []string `yaml:"required_columns" json:"required_columns,omitempty"`
	// PathToDigitalObjects is the folder holding files referenced by
	// the digitalObjectPath column.
	PathToDigitalObjects string `yaml:"digital_objects" json:"digital_objects,omitempty"`
}

// ConfigLoader loads the checker configuration for a working directory.
type ConfigLoader interface {
	Load(dir string) (CheckConfig, error)
}

// ReportHistory stores condensed reports of past runs.
type ReportHistory interface {
	Save(dir string, entry ReportEntry) error
	Load(dir string) ([]ReportEntry, error)
}
