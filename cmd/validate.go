package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/assetns/internal/build"
	"github.com/conneroisu/assetns/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [module...]",
	Short: "Check the configuration and compile every filter pattern",
	Long: `Load the configuration, report every invalid field, and compile the
filter patterns of each selected module. Nothing is walked or written.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addModuleFlags(validateCmd.Flags())
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, modules, err := resolveModules(args)
	if err != nil {
		return err
	}

	generator := build.NewGenerator(newLogger(cfg))
	out := cmd.OutOrStdout()
	failed := 0
	for _, m := range modules {
		set, err := generator.FilterSet(m)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", ui.Red.Render("✗"), m.Name, err)
			continue
		}
		fmt.Fprintf(out, "%s %s: %d rule(s), output %s\n",
			ui.Green.Render("✓"), m.Name, len(set.Rules()), m.Output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d module(s) are invalid", failed, len(modules))
	}
	return nil
}
