package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/ident"
)

var initCmd = &cobra.Command{
	Use:     "init [base]",
	Aliases: []string{"i"},
	Short:   "Write a starter .assetns.yml for an asset directory",
	Long: `Write a starter configuration declaring one module for the given asset
directory (default "assets"). Subdirectories whose files look binary are
placed in a binary block, everything else in a text block.

Examples:
  assetns init                  # Module for ./assets
  assetns init static --force   # Overwrite an existing .assetns.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initForce  bool
	initOutput string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing configuration file")
	initCmd.Flags().StringVar(&initOutput, "file", ".assetns.yml", "configuration file to write")
}

// binaryExtensions are file extensions init classifies as binary.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true,
	".wasm": true, ".pdf": true, ".zip": true, ".gz": true, ".mp3": true, ".mp4": true,
}

type starterFile struct {
	Modules []starterModule `yaml:"modules"`
}

type starterModule struct {
	Name   string             `yaml:"name"`
	Base   string             `yaml:"base"`
	Blocks []filter.BlockSpec `yaml:"blocks"`
}

func runInit(cmd *cobra.Command, args []string) error {
	base := "assets"
	if len(args) > 0 {
		base = args[0]
	}

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	module, err := starterModuleFor(base)
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(starterFile{Modules: []starterModule{module}})
	if err != nil {
		return err
	}
	if err := os.WriteFile(initOutput, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", initOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with module %q for %s\n", initOutput, module.Name, base)
	return nil
}

// starterModuleFor proposes a module for base by sorting the extensions of
// its files into a text and a binary block.
func starterModuleFor(base string) (starterModule, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return starterModule{}, err
	}

	text := map[string]bool{}
	binary := map[string]bool{}
	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == abs {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext == "" {
			return nil
		}
		if binaryExtensions[ext] {
			binary["**/*"+ext] = true
		} else {
			text["**/*"+ext] = true
		}
		return nil
	})
	if err != nil {
		return starterModule{}, err
	}

	textPatterns := sortedKeys(text)
	if len(textPatterns) == 0 && len(binary) == 0 {
		textPatterns = []string{"**"}
	}

	m := starterModule{
		Name: ident.ToValid(filepath.Base(abs)),
		Base: filepath.ToSlash(base),
	}
	if len(textPatterns) > 0 {
		m.Blocks = append(m.Blocks, filter.BlockSpec{Kind: filter.KindText.String(), Include: textPatterns})
	}
	if len(binary) > 0 {
		m.Blocks = append(m.Blocks, filter.BlockSpec{Kind: filter.KindBinary.String(), Include: sortedKeys(binary)})
	}

	// The proposal must pass the same checks as a hand-written module.
	cfg := &config.Config{Modules: []config.Module{{Name: m.Name, Base: m.Base, Filter: filter.Spec{Tagged: m.Blocks}}}}
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return starterModule{}, err
	}
	return m, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
