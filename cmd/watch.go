package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/assetns/internal/build"
	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/ui"
	"github.com/conneroisu/assetns/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [module...]",
	Aliases: []string{"w"},
	Short:   "Regenerate asset modules when their files change",
	Long: `Generate every selected module once, then watch their base directories
and regenerate a module whenever a file below its base is created,
modified, removed or renamed. Failed passes are reported and watching
continues.

Examples:
  assetns watch
  assetns watch assets --debounce 500ms`,
	RunE: runWatch,
}

var (
	watchDebounce time.Duration
	watchVerbose  bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	addModuleFlags(watchCmd.Flags())
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before regenerating (default from config, 100ms)")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "list changed files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, modules, err := resolveModules(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	generator := build.NewGenerator(logger)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	for _, m := range modules {
		regenerate(ctx, generator, m, out, errOut)
	}

	debounce := cfg.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	fileWatcher, err := watcher.NewFileWatcher(debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	outputs := make([]string, 0, len(modules))
	for _, m := range modules {
		outputs = append(outputs, m.Output)
	}
	fileWatcher.AddFilter(watcher.NoGitFilter)
	fileWatcher.AddFilter(watcher.NoTempFilter)
	fileWatcher.AddFilter(watcher.ExcludeFiles(outputs...))

	for _, m := range modules {
		if err := fileWatcher.AddRecursive(m.Base); err != nil {
			return fmt.Errorf("failed to watch %s: %w", m.Base, err)
		}
	}

	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		if watchVerbose {
			for _, event := range events {
				fmt.Fprintf(out, "%s %s\n", ui.Faint.Render(event.Type.String()), event.Path)
			}
		}
		for _, m := range affectedModules(modules, events) {
			regenerate(ctx, generator, m, out, errOut)
		}
		return nil
	})

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	fmt.Fprintf(out, "Watching %d module(s). Press Ctrl+C to stop.\n", len(modules))

	<-ctx.Done()
	return nil
}

func regenerate(ctx context.Context, generator *build.Generator, m config.Module, out, errOut io.Writer) {
	res, err := generator.Generate(ctx, m, build.Options{})
	if err != nil {
		fmt.Fprintln(errOut, ui.RenderError(err))
		return
	}
	fmt.Fprintln(out, ui.RenderSummary(ui.Summary{
		Module:    res.Module,
		Output:    res.Output,
		Constants: res.Stats.Constants,
		Skipped:   res.Stats.Skipped,
		Written:   res.Written,
	}))
}

// affectedModules returns, in configuration order, the modules whose base
// directory contains at least one changed path.
func affectedModules(modules []config.Module, events []watcher.ChangeEvent) []config.Module {
	var affected []config.Module
	for _, m := range modules {
		base, err := filepath.Abs(m.Base)
		if err != nil {
			continue
		}
		for _, event := range events {
			p, err := filepath.Abs(event.Path)
			if err != nil {
				continue
			}
			if p == base || strings.HasPrefix(p, base+string(filepath.Separator)) {
				affected = append(affected, m)
				break
			}
		}
	}
	return affected
}
