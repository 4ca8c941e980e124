//go:build property

package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/ident"
)

func TestModuleDefaultsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	formats := gen.OneConstOf("", "go", "json", "yaml", "yml", "JSON")

	properties.Property("defaults are idempotent", prop.ForAll(
		func(name, base, format string) bool {
			m := Module{Name: name, Base: base, Format: format}
			m.ApplyDefaults()
			once := m
			m.ApplyDefaults()
			return reflect.DeepEqual(once, m)
		},
		gen.AlphaString(), gen.AlphaString(), formats,
	))

	properties.Property("a sanitized name always validates", prop.ForAll(
		func(raw, format string) bool {
			cfg := &Config{Modules: []Module{{
				Name:   ident.ToValid(raw),
				Base:   "assets",
				Format: format,
				Filter: filter.Spec{Flat: []filter.GroupSpec{{Include: []string{"**"}}}},
			}}}
			ApplyDefaults(cfg)
			return Validate(cfg) == nil
		},
		gen.AnyString(), formats,
	))

	properties.Property("go output lives in the base directory", prop.ForAll(
		func(name string) bool {
			if name == "" {
				return true
			}
			m := Module{Name: name, Base: "static"}
			m.ApplyDefaults()
			return filepath.Dir(m.Output) == "static"
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
