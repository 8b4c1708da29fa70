package validator_test

import (
	"path"
	"sort"

	"github.com/openkraft/csvcheck/internal/domain"
)

type fakeOracle struct {
	cultures  map[string]bool
	languages map[string]bool
}

func newFakeOracle(cultures, languages []string) *fakeOracle {
	o := &fakeOracle{cultures: map[string]bool{}, languages: map[string]bool{}}
	for _, c := range cultures {
		o.cultures[c] = true
	}
	for _, l := range languages {
		o.languages[l] = true
	}
	return o
}

func (o *fakeOracle) IsValidCulture(code string) bool { return o.cultures[code] }

func (o *fakeOracle) KnownLanguageCodes() map[string]bool {
	out := make(map[string]bool, len(o.languages))
	for k := range o.languages {
		out[k] = true
	}
	return out
}

// fakeFS serves a single in-memory folder.
type fakeFS struct {
	requested string
	root      string
	files     []string
	// hidden exist on disk but are not part of the listing.
	hidden      map[string]bool
	listCalls   int
	existsCalls int
	listErr     error
}

func (p *fakeFS) ResolveCanonicalPath(dir string) (string, bool) {
	if dir == p.requested {
		return p.root, true
	}
	return "", false
}

func (p *fakeFS) ListFiles(root string) (*domain.FileListing, error) {
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	files := append([]string(nil), p.files...)
	sort.Strings(files)
	return &domain.FileListing{Root: root, Files: files}, nil
}

func (p *fakeFS) Exists(root, rel string) bool {
	p.existsCalls++
	if root != p.root {
		return false
	}
	rel = path.Clean(rel)
	for _, f := range p.files {
		if f == rel {
			return true
		}
	}
	return p.hidden[rel]
}

// feed runs every row through v and returns the final result.
func feed(v domain.RowValidator, header []string, rows ...[]string) *domain.TestResult {
	v.Reset()
	v.ObserveHeader(header)
	for _, row := range rows {
		v.TestRow(header, row)
	}
	return v.TestResult()
}
