// Package history keeps condensed reports of past validation runs.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/csvcheck/internal/domain"
)

const (
	historyFile = ".csvcheck/history/reports.json"

	// DefaultRetention is the number of entries kept by New.
	DefaultRetention = 200
)

// FileHistory implements domain.ReportHistory using JSON file storage.
// Only the most recent entries are retained.
type FileHistory struct {
	retain int
}

// New creates a FileHistory keeping DefaultRetention entries.
func New() *FileHistory {
	return &FileHistory{retain: DefaultRetention}
}

// NewWithRetention creates a FileHistory keeping at most n entries.
// n <= 0 keeps everything.
func NewWithRetention(n int) *FileHistory {
	return &FileHistory{retain: n}
}

// Save appends entry to the history under dir, dropping the oldest entries
// beyond the retention limit.
func (h *FileHistory) Save(dir string, entry domain.ReportEntry) error {
	entries, err := h.Load(dir)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.retain > 0 && len(entries) > h.retain {
		entries = entries[len(entries)-h.retain:]
	}

	fp := filepath.Join(dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return os.WriteFile(fp, data, 0644)
}

// Load returns all stored entries, oldest first. A missing history file
// yields no entries and no error.
func (h *FileHistory) Load(dir string) ([]domain.ReportEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, historyFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return entries, nil
}

// Last returns up to n most recent entries, newest first.
func (h *FileHistory) Last(dir string, n int) ([]domain.ReportEntry, error) {
	entries, err := h.Load(dir)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]domain.ReportEntry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
