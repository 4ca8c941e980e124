package config

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/conneroisu/assetns/internal/assemble"
	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/ident"
	"github.com/conneroisu/assetns/internal/logging"
)

// Validate checks config for errors that would otherwise surface halfway
// through a generation pass. Glob syntax is checked separately when the
// filter set is compiled.
func Validate(config *Config) error {
	var vec errors.ValidationErrorCollection

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		vec.AddField("log.level", config.Log.Level, err.Error(), "use debug, info, warn or error")
	}
	switch config.Log.Format {
	case "", "text", "json":
	default:
		vec.AddField("log.format", config.Log.Format, "unknown log format", "use text or json")
	}

	names := make(map[string]int)
	outputs := make(map[string]int)
	for i := range config.Modules {
		m := &config.Modules[i]
		prefix := fmt.Sprintf("modules[%d]", i)
		validateModule(&vec, prefix, m)

		if m.Name != "" {
			if j, dup := names[m.Name]; dup {
				vec.AddField(prefix+".name", m.Name,
					fmt.Sprintf("duplicate module name (also used by modules[%d])", j))
			}
			names[m.Name] = i
		}
		if m.Output != "" {
			out := filepath.Clean(m.Output)
			if j, dup := outputs[out]; dup {
				vec.AddField(prefix+".output", m.Output,
					fmt.Sprintf("output is also written by modules[%d]", j))
			}
			outputs[out] = i
		}
	}

	if vec.HasErrors() {
		return vec.ToAssetError()
	}
	return nil
}

func validateModule(vec *errors.ValidationErrorCollection, prefix string, m *Module) {
	switch {
	case m.Name == "":
		vec.AddField(prefix+".name", m.Name, "module name is required")
	case !ident.IsValid(m.Name):
		vec.AddField(prefix+".name", m.Name, "module name must be a valid identifier",
			fmt.Sprintf("use %q", ident.ToValid(m.Name)))
	}

	if strings.TrimSpace(m.Base) == "" {
		vec.AddField(prefix+".base", m.Base, "base directory is required")
	}

	switch m.Format {
	case "", assemble.FormatGo, assemble.FormatJSON, assemble.FormatYAML:
	default:
		vec.AddField(prefix+".format", m.Format, "unknown output format", "use go, json or yaml")
	}

	if m.Package != "" && (!token.IsIdentifier(m.Package) || token.IsKeyword(m.Package)) {
		vec.AddField(prefix+".package", m.Package, "package must be a valid Go package name")
	}

	if _, err := assemble.ParseCollisionPolicy(m.Collision); err != nil {
		vec.AddField(prefix+".collision", m.Collision, err.Error(), "use error or suffix")
	}

	if err := m.Filter.Validate(); err != nil {
		msg := err.Error()
		if ae, ok := err.(*errors.AssetError); ok {
			msg = ae.Message
		}
		vec.AddField(prefix+".filter", nil, msg,
			"use either filters (all text) or blocks (tagged text/binary), not both")
	}
}
