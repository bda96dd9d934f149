// Package config loads the ghusers configuration: defaults, then the
// YAML config file, then GHUSERS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix makes the override variables GHUSERS_PAGE_SIZE,
// GHUSERS_FORMAT, GHUSERS_DB_PATH, GHUSERS_TOKEN.
const envPrefix = "ghusers"

// GitHub rejects per_page above 100.
const maxPageSize = 100

// Config is the application configuration.
type Config struct {
	// PageSize is how many users one /users page requests.
	PageSize int `yaml:"page_size,omitempty" envconfig:"PAGE_SIZE"`

	// Format is the default non-interactive output format (table, json).
	Format string `yaml:"format,omitempty" envconfig:"FORMAT"`

	// DBPath overrides the local store location.
	DBPath string `yaml:"db_path,omitempty" envconfig:"DB_PATH"`

	// Token is the GitHub token. Environment only; never written to
	// or read from the config file.
	Token string `yaml:"-" envconfig:"TOKEN"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PageSize: 20,
		Format:   "table",
	}
}

// Path returns the config file location under the user config
// directory.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ghusers", "config.yml"), nil
}

// Load reads the config file at the default path. A missing file is
// not an error; defaults and environment overrides still apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path, then applies environment
// overrides and validates the result.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file: defaults stand.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("page_size %d out of range [1, %d]", c.PageSize, maxPageSize)
	}
	if c.Format != "table" && c.Format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", c.Format)
	}
	return nil
}
