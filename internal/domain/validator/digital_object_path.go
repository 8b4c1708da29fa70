package validator

import (
	"github.com/openkraft/csvcheck/internal/domain"
)

const (
	digitalObjectPathColumn = "digitalObjectPath"
	digitalObjectURIColumn  = "digitalObjectURI"
)

// DigitalObjectPathValidator reconciles digitalObjectPath values against
// the files present in the digital object folder: files never referenced,
// references to missing files, and paths referenced more than once.
//
// The folder is enumerated once by Configure. Reset clears only the usage
// counts, so one listing serves every file validated in a run.
type DigitalObjectPathValidator struct {
	fsys   domain.FileSystem
	config digitalObjectConfig
	cols   columns
	state  digitalObjectState
}

// digitalObjectConfig is established by Configure and never changed by Reset.
type digitalObjectConfig struct {
	requested string
	root      string
	listing   *domain.FileListing
}

type digitalObjectState struct {
	usage           map[string]int
	usageOrder      []string
	overriddenByURI int
}

// NewDigitalObjectPathValidator creates the validator and enumerates
// opts.PathToDigitalObjects through fsys when it names a directory.
func NewDigitalObjectPathValidator(fsys domain.FileSystem, opts domain.Options) *DigitalObjectPathValidator {
	v := &DigitalObjectPathValidator{fsys: fsys}
	v.Configure(opts)
	return v
}

func (v *DigitalObjectPathValidator) Title() string { return "Digital Object Path Test" }

func (v *DigitalObjectPathValidator) AppliesTo(source domain.SourceType) bool {
	return source == domain.SourceInformationObject
}

// Configure resolves the digital object folder and caches its listing.
// A path that cannot be resolved or read leaves the root unset.
func (v *DigitalObjectPathValidator) Configure(opts domain.Options) {
	v.cols = newColumns(digitalObjectPathColumn, opts.RequiredColumns)
	v.state = digitalObjectState{}
	v.config = digitalObjectConfig{requested: opts.PathToDigitalObjects}

	if opts.PathToDigitalObjects == "" {
		return
	}
	root, ok := v.fsys.ResolveCanonicalPath(opts.PathToDigitalObjects)
	if !ok {
		return
	}
	listing, err := v.fsys.ListFiles(root)
	if err != nil {
		return
	}
	v.config.root = root
	v.config.listing = listing
}

// Clone returns a validator with fresh scan state sharing this validator's
// configuration and folder listing. The listing is never mutated, so
// clones may run concurrently on different files.
func (v *DigitalObjectPathValidator) Clone() *DigitalObjectPathValidator {
	return &DigitalObjectPathValidator{
		fsys:   v.fsys,
		config: v.config,
		cols:   columns{required: v.cols.required},
	}
}

// Listing returns the cached folder listing, or nil when no folder resolved.
func (v *DigitalObjectPathValidator) Listing() *domain.FileListing {
	return v.config.listing
}

func (v *DigitalObjectPathValidator) Reset() {
	v.cols.reset()
	v.state = digitalObjectState{}
}

func (v *DigitalObjectPathValidator) ObserveHeader(header []string) {
	v.cols.observe(header)
}

func (v *DigitalObjectPathValidator) TestRow(header, row []string) bool {
	if !v.cols.next(header) {
		return false
	}

	path := v.cols.value(digitalObjectPathColumn, row)
	if !isBlank(path) {
		v.addToUsage(path)
	}

	// Import prefers the URI when both are populated.
	if columnPresentIn(digitalObjectURIColumn, header) {
		uri := v.cols.value(digitalObjectURIColumn, row)
		if !isBlank(path) && !isBlank(uri) {
			v.state.overriddenByURI++
		}
	}
	return true
}

func (v *DigitalObjectPathValidator) addToUsage(path string) {
	if v.state.usage == nil {
		v.state.usage = make(map[string]int)
	}
	if _, ok := v.state.usage[path]; !ok {
		v.state.usageOrder = append(v.state.usageOrder, path)
	}
	v.state.usage[path]++
}

func (v *DigitalObjectPathValidator) TestResult() *domain.TestResult {
	r := domain.NewTestResult(v.Title())

	if !v.cols.columnPresent(digitalObjectPathColumn) {
		r.AddResult("Column 'digitalObjectPath' not present in CSV. Nothing to verify.")
		v.cols.addColumnHints(r, digitalObjectPathColumn)
		return r
	}

	if v.cols.columnDuplicated(digitalObjectPathColumn) {
		appendDuplicatedColumnError(r, digitalObjectPathColumn)
		return r
	}

	r.AddResult("Column 'digitalObjectPath' found.")

	if v.config.root == "" {
		if v.config.requested == "" {
			r.AddResult("Digital object folder location not specified.")
		} else {
			r.AddResult("Unable to open digital object folder path: %s", v.config.requested)
		}
	}

	if len(v.state.usage) == 0 {
		r.AddResult("Column 'digitalObjectPath' is empty - nothing to validate.")
		return r
	}

	if v.state.overriddenByURI > 0 {
		r.SetStatusWarn()
		r.AddResult("'digitalObjectPath' will be overridden by 'digitalObjectURI' if both are populated.")
		r.AddResult("'digitalObjectPath' values that will be overridden by 'digitalObjectURI': %d", v.state.overriddenByURI)
	}

	if duplicated := v.usedMoreThanOnce(); len(duplicated) > 0 {
		r.SetStatusWarn()
		r.AddResult("Number of duplicated digital object paths found in CSV: %d", len(duplicated))
		for _, path := range duplicated {
			r.AddDetail("Number of duplicates for path '%s': %d", path, v.state.usage[path])
		}
	}

	if v.config.root == "" {
		return r
	}

	if unused := v.unusedFiles(); len(unused) > 0 {
		r.SetStatusWarn()
		r.AddResult("Digital objects in folder not referenced by CSV: %d", len(unused))
		for _, file := range unused {
			r.AddDetail("Unreferenced digital object: %s", file)
		}
	}

	if missing := v.missingFiles(); len(missing) > 0 {
		r.SetStatusError()
		r.AddResult("Digital objects referenced by CSV not found in folder: %d", len(missing))
		for _, file := range missing {
			r.AddDetail("Unable to locate digital object: %s", file)
		}
	}

	return r
}

// usedMoreThanOnce returns paths with a use count above one, in first-use order.
func (v *DigitalObjectPathValidator) usedMoreThanOnce() []string {
	var out []string
	for _, path := range v.state.usageOrder {
		if v.state.usage[path] > 1 {
			out = append(out, path)
		}
	}
	return out
}

// unusedFiles is the folder listing minus the referenced paths.
func (v *DigitalObjectPathValidator) unusedFiles() []string {
	if v.config.listing == nil {
		return nil
	}
	var out []string
	for _, file := range v.config.listing.Files {
		if _, ok := v.state.usage[file]; !ok {
			out = append(out, file)
		}
	}
	return out
}

// missingFiles returns referenced paths that do not exist under the root.
// Paths outside the listing are checked on disk, since CSV values may name
// files the walk never visited.
func (v *DigitalObjectPathValidator) missingFiles() []string {
	var out []string
	for _, path := range v.state.usageOrder {
		if v.config.listing.Contains(path) {
			continue
		}
		if !v.fsys.Exists(v.config.root, path) {
			out = append(out, path)
		}
	}
	return out
}
