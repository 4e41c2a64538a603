package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"

	"fieldmap/internal/directive"
)

// Config file names, in lookup order.
var FileNames = []string{"fieldmap.yaml", "fieldmap.yml", "fieldmap.toml"}

// DefaultRuntime is the import path of the runtime package.
const DefaultRuntime = "fieldmap"

// Config is the project configuration.
type Config struct {
	Runtime string      `yaml:"runtime,omitempty" toml:"runtime,omitempty"`
	Output  string      `yaml:"output,omitempty" toml:"output,omitempty"`
	Derive  []string    `yaml:"derive,omitempty" toml:"derive,omitempty"`
	Header  string      `yaml:"header,omitempty" toml:"header,omitempty"`
	Cache   CacheConfig `yaml:"cache" toml:"cache"`
}

// CacheConfig controls the generation cache.
type CacheConfig struct {
	// Enabled is nil when the file does not mention it.
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Runtime == "" {
		c.Runtime = DefaultRuntime
	}

	if len(c.Derive) == 0 {
		c.Derive = []string{directive.DeriveFieldName, directive.DeriveFieldsName}
	}

	if c.Cache.Enabled == nil {
		enabled := true
		c.Cache.Enabled = &enabled
	}
}

// CacheEnabled reports whether the generation cache is on.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// DeriveSet returns Derive as a set.
func (c *Config) DeriveSet() (directive.DeriveSet, error) {
	return directive.ParseDeriveNames(c.Derive)
}

// Validate checks the values a file may get wrong.
func (c *Config) Validate() error {
	var errs []error

	if err := module.CheckImportPath(c.Runtime); err != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", err))
	}

	if c.Output != "" {
		if path.Base(filepath.ToSlash(c.Output)) != c.Output {
			errs = append(errs, fmt.Errorf("output %q: must be a file name, not a path", c.Output))
		} else if !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
			errs = append(errs, fmt.Errorf("output %q: must end in .go and not in _test.go", c.Output))
		}
	}

	if _, err := c.DeriveSet(); err != nil {
		errs = append(errs, fmt.Errorf("derive: %w", err))
	}

	if strings.ContainsAny(c.Header, "\r\n") {
		errs = append(errs, errors.New("header: must be a single line"))
	}

	return errors.Join(errs...)
}
