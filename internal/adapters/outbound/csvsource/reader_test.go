package csvsource_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/csvsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *csvsource.Reader) [][]string {
	t.Helper()
	var rows [][]string
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestReader_HeaderAndRows(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader("title,culture\nOne,en\n\"Two, quoted\",fr\n"))

	header, err := r.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "culture"}, header)

	assert.Equal(t, [][]string{{"One", "en"}, {"Two, quoted", "fr"}}, readAll(t, r))
}

func TestReader_HeaderIsCached(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader("culture\nen\n"))

	first, err := r.Header()
	require.NoError(t, err)
	second, err := r.Header()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, [][]string{{"en"}}, readAll(t, r))
}

func TestReader_NextReadsHeaderFirst(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader("culture\nen\n"))

	assert.Equal(t, [][]string{{"en"}}, readAll(t, r))
}

func TestReader_StripsByteOrderMark(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader("\ufeffculture,language\nen,en\n"))

	header, err := r.Header()
	require.NoError(t, err)
	assert.Equal(t, "culture", header[0])
}

func TestReader_RaggedRows(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader("a,b,c\n1\n1,2,3,4\n"))

	_, err := r.Header()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"1", "2", "3", "4"}}, readAll(t, r))
}

func TestReader_EmptyInput(t *testing.T) {
	r := csvsource.NewReader(strings.NewReader(""))

	_, err := r.Header()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpener_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte("culture\nen\nfr\n"), 0644))

	src, err := csvsource.NewOpener().Open(path)
	require.NoError(t, err)

	r, ok := src.(*csvsource.Reader)
	require.True(t, ok)
	defer r.Close()

	assert.Equal(t, [][]string{{"en"}, {"fr"}}, readAll(t, r))
	assert.NoError(t, r.Close())
}

func TestOpener_OpenMissing(t *testing.T) {
	_, err := csvsource.NewOpener().Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
