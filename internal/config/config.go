// Package config provides configuration management for assetns using Viper
// for loading from files, environment variables, and command-line flags.
//
// A configuration lists asset modules. Each module names the directory to
// walk, the filter specification that classifies its files, and where the
// generated artifact is written. Modules may also be declared in an HCL file
// referenced by modules_file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/assetns/internal/assemble"
	"github.com/conneroisu/assetns/internal/filter"
)

// Config is the root configuration object.
type Config struct {
	Log         LogConfig   `mapstructure:"log" yaml:"log,omitempty"`
	Watch       WatchConfig `mapstructure:"watch" yaml:"watch,omitempty"`
	Modules     []Module    `mapstructure:"modules" yaml:"modules,omitempty"`
	ModulesFile string      `mapstructure:"modules_file" yaml:"modules_file,omitempty"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level,omitempty"`
	Format string `mapstructure:"format" yaml:"format,omitempty"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce,omitempty"`
}

// Module is one generation unit: {module identifier, base path, filter spec}
// plus output settings.
type Module struct {
	Name       string `mapstructure:"name" yaml:"name,omitempty"`
	Base       string `mapstructure:"base" yaml:"base,omitempty"`
	Output     string `mapstructure:"output" yaml:"output,omitempty"`
	Format     string `mapstructure:"format" yaml:"format,omitempty"`
	Package    string `mapstructure:"package" yaml:"package,omitempty"`
	Unexported bool   `mapstructure:"unexported" yaml:"unexported,omitempty"`
	Collision  string `mapstructure:"collision" yaml:"collision,omitempty"`

	Filter filter.Spec `mapstructure:",squash" yaml:",inline"`
}

// Defaults
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDebounce  = 100 * time.Millisecond
)

// Load reads the configuration held by the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration held by v, merges modules declared in
// modules_file, applies defaults and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.ModulesFile != "" {
		modules, err := LoadHCL(config.ModulesFile)
		if err != nil {
			return nil, err
		}
		config.Modules = append(config.Modules, modules...)
	}

	ApplyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills unset fields of config and its modules.
func ApplyDefaults(config *Config) {
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = DefaultLogFormat
	}
	if config.Watch.Debounce <= 0 {
		config.Watch.Debounce = DefaultDebounce
	}
	for i := range config.Modules {
		config.Modules[i].ApplyDefaults()
	}
}

// ApplyDefaults fills the format, package, collision policy and output path
// of m when they are unset.
func (m *Module) ApplyDefaults() {
	m.Format = strings.ToLower(m.Format)
	if m.Format == "" {
		m.Format = assemble.FormatGo
	}
	if m.Format == "yml" {
		m.Format = assemble.FormatYAML
	}
	if m.Package == "" && m.Format == assemble.FormatGo {
		m.Package = assemble.PackageName(m.Name)
	}
	if m.Collision == "" {
		m.Collision = string(assemble.CollisionError)
	}
	if m.Output == "" && m.Name != "" {
		m.Output = DefaultOutput(*m)
	}
}

// DefaultOutput returns the output path used when a module sets none: a Go
// file inside the base directory, or a manifest in the working directory.
func DefaultOutput(m Module) string {
	stem := strings.ToLower(m.Name)
	switch m.Format {
	case assemble.FormatJSON, assemble.FormatYAML:
		return stem + ".manifest." + m.Format
	default:
		return filepath.Join(m.Base, stem+"_gen.go")
	}
}

// Find returns the module called name.
func (c *Config) Find(name string) (*Module, bool) {
	for i := range c.Modules {
		if c.Modules[i].Name == name {
			return &c.Modules[i], true
		}
	}
	return nil, false
}

// Select returns the modules named in names, or every module when names is
// empty.
func (c *Config) Select(names []string) ([]Module, error) {
	if len(names) == 0 {
		return c.Modules, nil
	}
	selected := make([]Module, 0, len(names))
	for _, name := range names {
		m, ok := c.Find(name)
		if !ok {
			return nil, fmt.Errorf("module %q is not configured", name)
		}
		selected = append(selected, *m)
	}
	return selected, nil
}
