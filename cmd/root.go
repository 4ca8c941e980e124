package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetns",
	Short: "Generate typed namespaces from asset directories",
	Long: `assetns walks an asset directory, classifies every file as text or
binary with ordered glob rules, and generates a namespace mirroring the
directory tree: one named constant per file, one nested namespace per
directory.

Quick Start:
  assetns generate --name assets --base ./assets --include 'lang/*.toml'
  assetns generate                 Generate every configured module
  assetns tree assets              Show the namespace of a module
  assetns watch                    Regenerate on changes
  assetns validate                 Check the configuration`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .assetns.yml, can also use ASSETNS_CONFIG_FILE env var); .hcl files declare modules")
	rootCmd.PersistentFlags().StringP("log-level", "l", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig points viper at the configuration file and enables ASSETNS_
// environment overrides (ASSETNS_LOG_LEVEL, ASSETNS_WATCH_DEBOUNCE, ...).
func initConfig() {
	file := cfgFile
	if file == "" {
		file = os.Getenv("ASSETNS_CONFIG_FILE")
	}

	hcl := strings.EqualFold(filepath.Ext(file), ".hcl")
	if hcl {
		viper.Set("modules_file", file)
	}
	if file != "" && !hcl {
		viper.SetConfigFile(file)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".assetns")
	}

	viper.SetEnvPrefix("ASSETNS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// newLogger builds the CLI logger from the log section of cfg.
func newLogger(cfg *config.Config) logging.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}
