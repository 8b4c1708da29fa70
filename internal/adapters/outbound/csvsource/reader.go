// Package csvsource reads CSV files as domain.RowSource values.
package csvsource

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/openkraft/csvcheck/internal/domain"
)

const utf8BOM = "\ufeff"

// Reader is a domain.RowSource over CSV data. Rows may have any number of
// fields and bare quotes are tolerated.
type Reader struct {
	r      *csv.Reader
	closer io.Closer
	header []string
	read   bool
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{r: cr}
}

// Header returns the first record, with a leading UTF-8 byte order mark
// removed. Repeated calls return the same header.
func (r *Reader) Header() ([]string, error) {
	if r.read {
		return r.header, nil
	}
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	if len(rec) > 0 {
		rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
	}
	r.header = rec
	r.read = true
	return rec, nil
}

// Next returns the next data row, or io.EOF.
func (r *Reader) Next() ([]string, error) {
	if !r.read {
		if _, err := r.Header(); err != nil {
			return nil, err
		}
	}
	return r.r.Read()
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Opener implements domain.SourceOpener for files on disk.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener { return &Opener{} }

// Open opens path for reading. The returned source must be closed.
func (o *Opener) Open(path string) (domain.RowSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}
