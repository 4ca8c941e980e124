package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/ident"
)

// Flags describing a module on the command line instead of in the
// configuration file. Shared by generate, tree and watch.
var (
	moduleName             string
	moduleBase             string
	moduleOutput           string
	moduleFormat           string
	modulePackage          string
	moduleCollision        string
	moduleInclude          []string
	moduleExclude          []string
	moduleBinaryInclude    []string
	moduleBinaryExclude    []string
	moduleIgnore           []string
	moduleLiteralSeparator bool
	moduleNoDefaultIgnore  bool
	moduleUnexported       bool
)

func addModuleFlags(f *pflag.FlagSet) {
	f.StringVar(&moduleName, "name", "", "module identifier (default: sanitized base directory name)")
	f.StringVar(&moduleBase, "base", "", "base directory to walk; selects command-line mode")
	f.StringVarP(&moduleOutput, "output", "o", "", "output file (default: <base>/<name>_gen.go or <name>.manifest.<format>)")
	f.StringVarP(&moduleFormat, "format", "f", "", "output format (go, json, yaml)")
	f.StringVar(&modulePackage, "package", "", "Go package name of the generated file")
	f.StringVar(&moduleCollision, "collision", "", "identifier collision policy (error, suffix)")
	f.StringSliceVar(&moduleInclude, "include", nil, "text include patterns")
	f.StringSliceVar(&moduleExclude, "exclude", nil, "text exclude patterns")
	f.StringSliceVar(&moduleBinaryInclude, "binary-include", nil, "binary include patterns")
	f.StringSliceVar(&moduleBinaryExclude, "binary-exclude", nil, "binary exclude patterns")
	f.StringSliceVar(&moduleIgnore, "ignore", nil, "additional ignore patterns")
	f.BoolVar(&moduleLiteralSeparator, "literal-separator", false, "'*' does not match '/'")
	f.BoolVar(&moduleNoDefaultIgnore, "no-default-ignore", false, "do not ignore .gitignore, .gitmodules and .DS_Store")
	f.BoolVar(&moduleUnexported, "unexported", false, "generate unexported Go identifiers")
}

// resetModuleFlags restores the zero values of the module flags.
func resetModuleFlags() {
	moduleName, moduleBase, moduleOutput, moduleFormat = "", "", "", ""
	modulePackage, moduleCollision = "", ""
	moduleInclude, moduleExclude = nil, nil
	moduleBinaryInclude, moduleBinaryExclude, moduleIgnore = nil, nil, nil
	moduleLiteralSeparator, moduleNoDefaultIgnore, moduleUnexported = false, false, false
}

// flagModule builds the module described by the command-line flags. With
// binary patterns the filter uses tagged blocks, otherwise every match is
// text. Without any include pattern every file is included as text.
func flagModule() (config.Module, error) {
	name := moduleName
	if name == "" {
		abs, err := filepath.Abs(moduleBase)
		if err != nil {
			return config.Module{}, err
		}
		name = ident.ToValid(filepath.Base(abs))
	}

	spec := filter.Spec{
		Ignore:           moduleIgnore,
		NoDefaultIgnore:  moduleNoDefaultIgnore,
		LiteralSeparator: moduleLiteralSeparator,
	}
	include := moduleInclude
	if len(include) == 0 && len(moduleBinaryInclude) == 0 {
		include = []string{"**"}
	}
	if len(moduleBinaryInclude) > 0 {
		if len(include) > 0 {
			spec.Tagged = append(spec.Tagged, filter.BlockSpec{
				Kind: filter.KindText.String(), Include: include, Exclude: moduleExclude,
			})
		}
		spec.Tagged = append(spec.Tagged, filter.BlockSpec{
			Kind: filter.KindBinary.String(), Include: moduleBinaryInclude, Exclude: moduleBinaryExclude,
		})
	} else {
		spec.Flat = []filter.GroupSpec{{Include: include, Exclude: moduleExclude}}
	}

	return config.Module{
		Name:       name,
		Base:       moduleBase,
		Output:     moduleOutput,
		Format:     moduleFormat,
		Package:    modulePackage,
		Unexported: moduleUnexported,
		Collision:  moduleCollision,
		Filter:     spec,
	}, nil
}

// resolveModules returns the configuration and the modules a command acts
// on: the flag module when --base is set, otherwise the configured modules
// named in args (all of them when args is empty).
func resolveModules(args []string) (*config.Config, []config.Module, error) {
	if moduleBase != "" {
		if len(args) > 0 {
			return nil, nil, fmt.Errorf("module names cannot be combined with --base")
		}
		m, err := flagModule()
		if err != nil {
			return nil, nil, err
		}
		cfg := &config.Config{Modules: []config.Module{m}}
		config.ApplyDefaults(cfg)
		if err := config.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("invalid module flags: %w", err)
		}
		return cfg, cfg.Modules, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Modules) == 0 {
		return nil, nil, fmt.Errorf("no modules configured: add modules to .assetns.yml or pass --base")
	}
	modules, err := cfg.Select(args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, modules, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
