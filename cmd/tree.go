package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/assetns/internal/build"
	"github.com/conneroisu/assetns/internal/types"
	"github.com/conneroisu/assetns/internal/ui"
)

var treeCmd = &cobra.Command{
	Use:     "tree [module...]",
	Aliases: []string{"t"},
	Short:   "Show the namespace tree of asset modules",
	Long: `Walk each module and print the namespace it would generate, without
assembling or writing anything.

Examples:
  assetns tree
  assetns tree --base ./static --binary-include 'images/*'`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addModuleFlags(treeCmd.Flags())
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, modules, err := resolveModules(args)
	if err != nil {
		return err
	}

	generator := build.NewGenerator(newLogger(cfg))
	out := cmd.OutOrStdout()
	for i, m := range modules {
		tree, stats, err := generator.Scan(commandContext(cmd), m)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		counts := types.Count(tree)
		fmt.Fprintln(out, ui.RenderTree(tree))
		fmt.Fprintln(out, ui.Faint.Render(fmt.Sprintf("%d namespaces, %d text, %d binary, %d skipped",
			counts.Namespaces, counts.Text, counts.Binary, stats.Skipped)))
	}
	return nil
}
