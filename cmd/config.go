package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the assetns configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging the config file, the modules
file, ASSETNS_ environment variables and defaults.

Examples:
  assetns config show
  assetns config show --highlight`,
	RunE: runConfigShow,
}

var configShowHighlight bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&configShowHighlight, "highlight", false, "syntax highlight the output")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(out, ui.Faint.Render("# "+used))
	}
	if configShowHighlight {
		return ui.Highlight(out, string(content), "yaml", "")
	}
	_, err = out.Write(content)
	return err
}
