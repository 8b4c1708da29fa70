package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openkraft/csvcheck/internal/domain"
)

const (
	fileName = ".csvcheck.yaml"
	envFile  = ".env"

	envDigitalObjects = "CSVCHECK_DIGITAL_OBJECTS"
	envSource         = "CSVCHECK_SOURCE"
)

// YAMLLoader implements domain.ConfigLoader by reading .csvcheck.yaml.
type YAMLLoader struct {
	lookupEnv func(string) (string, bool)
}

// New creates a YAMLLoader reading overrides from the process environment.
func New() *YAMLLoader { return &YAMLLoader{lookupEnv: os.LookupEnv} }

// Load reads .csvcheck.yaml from dir.
// Returns DefaultConfig if the file does not exist. Values from a .env file
// in dir, then from the process environment, override the file.
func (l *YAMLLoader) Load(dir string) (domain.CheckConfig, error) {
	cfg := domain.CheckConfig{}

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.CheckConfig{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.CheckConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
	}

	if err := l.applyEnv(dir, &cfg); err != nil {
		return domain.CheckConfig{}, err
	}

	// Relative folders are relative to the config directory, not the
	// process working directory.
	if cfg.DigitalObjects != "" && !filepath.IsAbs(cfg.DigitalObjects) {
		cfg.DigitalObjects = filepath.Join(dir, cfg.DigitalObjects)
	}

	// Validate before merging so typos in the user's input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.CheckConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

func (l *YAMLLoader) applyEnv(dir string, cfg *domain.CheckConfig) error {
	dotenv, err := godotenv.Read(filepath.Join(dir, envFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("parsing %s: %w", envFile, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(envDigitalObjects); ok && v != "" {
		cfg.DigitalObjects = v
	}
	if v, ok := lookup(envSource); ok && v != "" {
		cfg.Source = domain.SourceType(v)
	}
	return nil
}

// mergeConfig overlays explicit values on top of defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.CheckConfig) domain.CheckConfig {
	result := override

	if override.Source == "" {
		result.Source = base.Source
	}
	if override.Concurrency == 0 {
		result.Concurrency = base.Concurrency
	}

	return result
}
