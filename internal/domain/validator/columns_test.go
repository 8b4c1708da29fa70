package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"digitalObjectPath", "digital_object_path"},
		{"DigitalObjectPath", "digital_object_path"},
		{"digital_object_path", "digital_object_path"},
		{"Digital Object Path", "digital_object_path"},
		{"culture", "culture"},
		{"  culture ", "culture"},
		{"legacyID", "legacy_id"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeColumn(tt.in))
		})
	}
}

func TestMergeColumns(t *testing.T) {
	assert.Equal(t, []string{"culture"}, mergeColumns("culture", nil))
	assert.Equal(t,
		[]string{"culture", "legacyId", "title"},
		mergeColumns("culture", []string{"legacyId", "", "culture", "title", "legacyId"}),
	)
}

func TestColumns_NextCountsRowsAndChecksRequired(t *testing.T) {
	c := newColumns("culture", []string{"legacyId"})

	assert.True(t, c.next([]string{"legacyId", "culture"}))
	assert.True(t, c.next([]string{"legacyId", "culture"}))
	assert.Equal(t, 2, c.rowNumber)

	c.reset()
	assert.False(t, c.next([]string{"culture"}), "extra required column missing")
	assert.Equal(t, 1, c.rowNumber)
	assert.Equal(t, []string{"culture", "legacyId"}, c.required, "reset keeps required columns")
}

func TestColumns_ObserveOnlyOnce(t *testing.T) {
	c := newColumns("culture", nil)
	c.observe([]string{"culture"})
	c.observe([]string{"title"})

	assert.True(t, c.columnPresent("culture"))
	assert.False(t, c.columnPresent("title"))
}

func TestColumns_Value(t *testing.T) {
	c := newColumns("culture", nil)
	c.observe([]string{"title", "culture"})

	assert.Equal(t, "en", c.value("culture", []string{"t", "en"}))
	assert.Equal(t, "", c.value("culture", []string{"t"}))
	assert.Equal(t, "", c.value("language", []string{"t", "en"}))
}

func TestOrderedSet(t *testing.T) {
	var s orderedSet
	for _, v := range []string{"b", "a", "b", "c", "a"} {
		s.add(v)
	}

	assert.Equal(t, []string{"b", "a", "c"}, s.items)
	assert.Equal(t, "b, a, c", s.join(", "))
}
