package domain_test

import (
	"testing"

	"github.com/openkraft/csvcheck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.SourceInformationObject, cfg.Source)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Empty(t, cfg.DigitalObjects)
	assert.Empty(t, cfg.Skip)
	assert.False(t, cfg.Strict)
}

func TestOptions_FromConfig(t *testing.T) {
	cfg := domain.CheckConfig{
		DigitalObjects:  "/srv/objects",
		RequiredColumns: []string{"legacyId"},
	}
	opts := cfg.Options()
	assert.Equal(t, "/srv/objects", opts.PathToDigitalObjects)
	assert.Equal(t, []string{"legacyId"}, opts.RequiredColumns)
}

func TestIsSkipped(t *testing.T) {
	cfg := domain.CheckConfig{Skip: []string{"language"}}
	assert.True(t, cfg.IsSkipped("language"))
	assert.False(t, cfg.IsSkipped("culture"))
}

func TestIsSkipped_Empty(t *testing.T) {
	assert.False(t, domain.CheckConfig{}.IsSkipped("culture"))
}

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	assert.NoError(t, domain.CheckConfig{}.Validate())
	assert.NoError(t, domain.DefaultConfig().Validate())
}

func TestValidate_AllSourcesAccepted(t *testing.T) {
	for _, src := range domain.ValidSourceTypes {
		assert.NoError(t, domain.CheckConfig{Source: src}.Validate(), src)
	}
}

func TestValidate_UnknownSource(t *testing.T) {
	err := domain.CheckConfig{Source: "person"}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
	assert.Contains(t, err.Error(), "person")
}

func TestValidate_UnknownValidatorInSkip(t *testing.T) {
	err := domain.CheckConfig{Skip: []string{"title"}}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown validator "title"`)
}

func TestValidate_AllValidatorsSkipped(t *testing.T) {
	err := domain.CheckConfig{Skip: domain.ValidValidators}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot skip all validators")
}

func TestValidate_ConcurrencyOutOfRange(t *testing.T) {
	assert.Error(t, domain.CheckConfig{Concurrency: -1}.Validate())
	assert.Error(t, domain.CheckConfig{Concurrency: 65}.Validate())
	assert.NoError(t, domain.CheckConfig{Concurrency: 64}.Validate())
}

func TestValidate_EmptyRequiredColumn(t *testing.T) {
	err := domain.CheckConfig{RequiredColumns: []string{"legacyId", ""}}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required_columns[1]")
}
