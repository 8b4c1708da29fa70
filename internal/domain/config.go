package domain

import "fmt"

// SourceType identifies the kind of entity a CSV file imports.
type SourceType string

const (
	SourceInformationObject SourceType = "informationObject"
	SourceRepository        SourceType = "repository"
	SourceActor             SourceType = "actor"
	SourceAccession         SourceType = "accession"
	SourceEvent             SourceType = "event"
)

// ValidSourceTypes enumerates all recognized source types.
var ValidSourceTypes = []SourceType{
	SourceInformationObject,
	SourceRepository,
	SourceActor,
	SourceAccession,
	SourceEvent,
}

// ValidValidators enumerates the identifiers accepted in skip lists.
var ValidValidators = []string{
	"culture", "language", "digital_object_path",
}

const maxConcurrency = 64

// CheckConfig holds run configuration loaded from .csvcheck.yaml.
type CheckConfig struct {
	Source          SourceType `yaml:"source"           json:"source,omitempty"`
	DigitalObjects  string     `yaml:"digital_objects"  json:"digital_objects,omitempty"`
	RequiredColumns []string   `yaml:"required_columns" json:"required_columns,omitempty"`
	Skip            []string   `yaml:"skip"             json:"skip,omitempty"`
	ExcludePaths    []string   `yaml:"exclude_paths"    json:"exclude_paths,omitempty"`
	ExtraCultures   []string   `yaml:"extra_cultures"   json:"extra_cultures,omitempty"`
	ExtraLanguages  []string   `yaml:"extra_languages"  json:"extra_languages,omitempty"`
	Concurrency     int        `yaml:"concurrency"      json:"concurrency,omitempty"`
	Strict          bool       `yaml:"strict"           json:"strict,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() CheckConfig {
	return CheckConfig{
		Source:      SourceInformationObject,
		Concurrency: 4,
	}
}

// Options returns the validator options derived from the config.
func (c CheckConfig) Options() Options {
	return Options{
		RequiredColumns:      c.RequiredColumns,
		PathToDigitalObjects: c.DigitalObjects,
	}
}

// IsSkipped reports whether the named validator is disabled.
func (c CheckConfig) IsSkipped(name string) bool {
	for _, s := range c.Skip {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c CheckConfig) Validate() error {
	if c.Source != "" && !isValidSource(c.Source) {
		return fmt.Errorf("unknown source %q (valid: informationObject, repository, actor, accession, event)", c.Source)
	}

	for _, s := range c.Skip {
		if !isValidValidator(s) {
			return fmt.Errorf("unknown validator %q in skip", s)
		}
	}
	if len(c.Skip) >= len(ValidValidators) {
		return fmt.Errorf("cannot skip all validators (must have at least one active)")
	}

	if c.Concurrency < 0 || c.Concurrency > maxConcurrency {
		return fmt.Errorf("concurrency must be between 0 and %d (got %d)", maxConcurrency, c.Concurrency)
	}

	for i, col := range c.RequiredColumns {
		if col == "" {
			return fmt.Errorf("required_columns[%d] must not be empty", i)
		}
	}

	return nil
}

func isValidSource(s SourceType) bool {
	for _, v := range ValidSourceTypes {
		if v == s {
			return true
		}
	}
	return false
}

func isValidValidator(name string) bool {
	for _, v := range ValidValidators {
		if v == name {
			return true
		}
	}
	return false
}
