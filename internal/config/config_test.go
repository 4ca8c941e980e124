package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/filter"
)

const sampleYAML = `
log:
  level: debug
watch:
  debounce: 250ms
modules:
  - name: assets
    base: testdata/assets
    blocks:
      - kind: text
        include: ["lang/*.toml"]
      - kind: binary
        groups:
          - include: ["images/*.png"]
            exclude: ["images/private/*"]
  - name: docs
    base: docs
    format: json
    literal_separator: true
    ignore: ["*.tmp"]
    filters:
      - include: ["**/*.md"]
`

func loadYAML(t *testing.T, src string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(src)))
	return LoadFrom(v)
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := loadYAML(t, sampleYAML)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	require.Len(t, cfg.Modules, 2)

	assets := cfg.Modules[0]
	assert.Equal(t, "assets", assets.Name)
	assert.Equal(t, "go", assets.Format)
	assert.Equal(t, "assets", assets.Package)
	assert.Equal(t, "error", assets.Collision)
	assert.Equal(t, filepath.Join("testdata/assets", "assets_gen.go"), assets.Output)
	require.Len(t, assets.Filter.Tagged, 2)
	assert.Equal(t, "text", assets.Filter.Tagged[0].Kind)
	assert.Equal(t, []string{"lang/*.toml"}, assets.Filter.Tagged[0].Include)
	require.Len(t, assets.Filter.Tagged[1].Groups, 1)
	assert.Equal(t, []string{"images/private/*"}, assets.Filter.Tagged[1].Groups[0].Exclude)

	docs := cfg.Modules[1]
	assert.Equal(t, "json", docs.Format)
	assert.Empty(t, docs.Package)
	assert.Equal(t, "docs.manifest.json", docs.Output)
	assert.True(t, docs.Filter.LiteralSeparator)
	assert.Equal(t, []string{"*.tmp"}, docs.Filter.Ignore)
	require.Len(t, docs.Filter.Flat, 1)

	set, err := docs.Filter.Compile(nil)
	require.NoError(t, err)
	kind, ok := set.Classify("guide/intro.md")
	require.True(t, ok)
	assert.Equal(t, filter.KindText, kind)
}

func TestLoadGlobalViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("modules", []map[string]interface{}{
		{"name": "icons", "base": "icons", "filters": []map[string]interface{}{{"include": []string{"*.svg"}}}},
	})

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Modules, 1)
	assert.Equal(t, "icons", cfg.Modules[0].Name)
	assert.Equal(t, []string{"*.svg"}, cfg.Modules[0].Filter.Flat[0].Include)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		field  string
	}{
		{
			name:   "missing name",
			config: Config{Modules: []Module{{Base: "a"}}},
			field:  "modules[0].name",
		},
		{
			name:   "invalid identifier",
			config: Config{Modules: []Module{{Name: "my-assets", Base: "a"}}},
			field:  "modules[0].name",
		},
		{
			name:   "missing base",
			config: Config{Modules: []Module{{Name: "a"}}},
			field:  "modules[0].base",
		},
		{
			name:   "unknown format",
			config: Config{Modules: []Module{{Name: "a", Base: "a", Format: "toml"}}},
			field:  "modules[0].format",
		},
		{
			name:   "bad package",
			config: Config{Modules: []Module{{Name: "a", Base: "a", Package: "func"}}},
			field:  "modules[0].package",
		},
		{
			name:   "unknown collision policy",
			config: Config{Modules: []Module{{Name: "a", Base: "a", Collision: "last"}}},
			field:  "modules[0].collision",
		},
		{
			name: "both filter shapes",
			config: Config{Modules: []Module{{Name: "a", Base: "a", Filter: filter.Spec{
				Flat:   []filter.GroupSpec{{Include: []string{"*"}}},
				Tagged: []filter.BlockSpec{{Kind: "text", Include: []string{"*"}}},
			}}}},
			field: "modules[0].filter",
		},
		{
			name: "unknown kind",
			config: Config{Modules: []Module{{Name: "a", Base: "a", Filter: filter.Spec{
				Tagged: []filter.BlockSpec{{Kind: "image", Include: []string{"*"}}},
			}}}},
			field: "modules[0].filter",
		},
		{
			name:   "duplicate names",
			config: Config{Modules: []Module{{Name: "a", Base: "a"}, {Name: "a", Base: "b"}}},
			field:  "modules[1].name",
		},
		{
			name: "shared output",
			config: Config{Modules: []Module{
				{Name: "a", Base: "a", Output: "out.go"},
				{Name: "b", Base: "b", Output: "./out.go"},
			}},
			field: "modules[1].output",
		},
		{
			name:   "bad log level",
			config: Config{Log: LogConfig{Level: "loud"}},
			field:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.config)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err))
			assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))

			ae, ok := err.(*errors.AssetError)
			require.True(t, ok)
			assert.Contains(t, ae.Context, tt.field)
		})
	}

	valid := Config{Modules: []Module{{Name: "assets", Base: "assets"}}}
	ApplyDefaults(&valid)
	assert.NoError(t, Validate(&valid))
}

const sampleHCL = `
module "assets" {
  base   = "testdata/assets"
  output = "internal/assets/assets_gen.go"

  filter "text" {
    include = ["lang/*.toml"]
  }

  filter "binary" {
    group {
      include = ["images/*.png"]
      exclude = ["images/private/*"]
    }
  }
}

module "notes" {
  base              = "notes"
  format            = "yaml"
  no_default_ignore = true

  group {
    include = ["**"]
  }
}
`

func TestParseHCL(t *testing.T) {
	modules, err := ParseHCL("modules.hcl", []byte(sampleHCL))
	require.NoError(t, err)
	require.Len(t, modules, 2)

	assets := modules[0]
	assert.Equal(t, "assets", assets.Name)
	assert.Equal(t, "internal/assets/assets_gen.go", assets.Output)
	require.Len(t, assets.Filter.Tagged, 2)
	assert.Equal(t, "text", assets.Filter.Tagged[0].Kind)
	assert.Equal(t, "binary", assets.Filter.Tagged[1].Kind)
	assert.Equal(t, []string{"images/*.png"}, assets.Filter.Tagged[1].Groups[0].Include)

	notes := modules[1]
	assert.Equal(t, "yaml", notes.Format)
	assert.True(t, notes.Filter.NoDefaultIgnore)
	require.Len(t, notes.Filter.Flat, 1)
	assert.Empty(t, notes.Filter.Tagged)
}

func TestParseHCLErrors(t *testing.T) {
	_, err := ParseHCL("modules.hcl", []byte(`module "x" {}`))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "modules.hcl")

	_, err = ParseHCL("modules.hcl", []byte(`module "x" { base = `))
	assert.Error(t, err)
}

func TestLoadFromModulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modules.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleHCL), 0o644))

	v := viper.New()
	v.Set("modules_file", path)
	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	require.Len(t, cfg.Modules, 2)
	assert.Equal(t, "notes.manifest.yaml", cfg.Modules[1].Output)

	_, err = LoadHCL(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	cfg := &Config{Modules: []Module{{Name: "a"}, {Name: "b"}}}

	all, err := cfg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := cfg.Select([]string{"b"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "b", one[0].Name)

	_, err = cfg.Select([]string{"c"})
	assert.Error(t, err)
}
