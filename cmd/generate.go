package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/assetns/internal/build"
	"github.com/conneroisu/assetns/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:     "generate [module...]",
	Aliases: []string{"gen", "g"},
	Short:   "Generate the namespace artifact of asset modules",
	Long: `Walk the base directory of each module, classify its files and write
the generated artifact. Outputs whose content is unchanged are not
rewritten.

Examples:
  assetns generate                          # Every configured module
  assetns generate assets                   # One configured module
  assetns generate --base ./static --binary-include 'images/*.png' --include 'lang/*'
  assetns generate --base ./static --format json --stdout`,
	RunE: runGenerate,
}

var (
	generateStdout    bool
	generateDryRun    bool
	generateHighlight bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	addModuleFlags(generateCmd.Flags())
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print the artifact instead of writing it")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "assemble without writing")
	generateCmd.Flags().BoolVar(&generateHighlight, "highlight", false, "syntax highlight --stdout output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, modules, err := resolveModules(args)
	if err != nil {
		return err
	}

	generator := build.NewGenerator(newLogger(cfg))
	opts := build.Options{DryRun: generateDryRun || generateStdout}
	results, genErr := generator.GenerateAll(commandContext(cmd), modules, opts)

	out := cmd.OutOrStdout()
	for _, res := range results {
		if generateStdout {
			content := string(res.Artifact.Content)
			if generateHighlight {
				if err := ui.Highlight(out, content, res.Artifact.Format, ""); err != nil {
					return err
				}
				continue
			}
			fmt.Fprint(out, content)
			continue
		}
		fmt.Fprintln(out, ui.RenderSummary(ui.Summary{
			Module:    res.Module,
			Output:    res.Output,
			Constants: res.Stats.Constants,
			Skipped:   res.Stats.Skipped,
			Written:   res.Written,
			DryRun:    opts.DryRun,
		}))
	}
	return genErr
}
