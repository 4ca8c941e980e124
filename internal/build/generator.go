// Package build runs the generation pass of an asset module: compile the
// filter set, walk the base directory, assemble the artifact and write it.
//
// A pass is one-shot and fails fast. Nothing is written unless every step
// succeeds, and an artifact identical to the file already on disk is not
// rewritten, so downstream incremental builds only see real changes.
package build

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/conneroisu/assetns/internal/assemble"
	"github.com/conneroisu/assetns/internal/config"
	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/logging"
	"github.com/conneroisu/assetns/internal/types"
	"github.com/conneroisu/assetns/internal/walker"
)

// Options control a generation pass.
type Options struct {
	// DryRun assembles the artifact without writing it.
	DryRun bool
}

// Result describes one completed pass.
type Result struct {
	Module   string
	Output   string
	Tree     *types.Namespace
	Stats    walker.Stats
	Artifact *assemble.Artifact
	// Written is false for dry runs and when the output was already current.
	Written  bool
	DryRun   bool
	Duration time.Duration
}

// Generator runs generation passes. Compiled patterns are cached across
// passes, which keeps repeated runs in watch mode cheap.
type Generator struct {
	logger  logging.Logger
	errors  *errors.ErrorHandler
	cache   *filter.PatternCache
	metrics *Metrics
}

// NewGenerator creates a generator logging to logger.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	cache, err := filter.NewPatternCache(filter.DefaultCacheSize)
	if err != nil {
		// Only a non-positive size fails, and DefaultCacheSize is positive.
		cache = nil
	}
	logger = logger.WithComponent("build")
	return &Generator{
		logger:  logger,
		errors:  errors.NewErrorHandler(logger),
		cache:   cache,
		metrics: NewMetrics(),
	}
}

// Metrics returns the pass counters of g.
func (g *Generator) Metrics() *Metrics {
	return g.metrics
}

// FilterSet compiles the filter specification of m. When m's output lies
// inside its base directory, the output file is added to the ignore group
// so a pass never picks up its own artifact.
func (g *Generator) FilterSet(m config.Module) (*filter.ClassifiedSet, error) {
	spec := m.Filter
	if rel, ok := outputInBase(m); ok {
		spec.Ignore = append(append([]string(nil), spec.Ignore...), filter.QuoteMeta(rel))
	}
	return spec.Compile(g.cache)
}

// Scan compiles the filters of m and walks its base directory.
func (g *Generator) Scan(ctx context.Context, m config.Module) (*types.Namespace, walker.Stats, error) {
	m.ApplyDefaults()
	set, err := g.FilterSet(m)
	if err != nil {
		return nil, walker.Stats{}, withModule(err, m.Name)
	}
	tree, stats, err := walker.NewOS(m.Base, set, g.logger.With("module", m.Name)).Walk(ctx, m.Name)
	if err != nil {
		return nil, stats, withModule(err, m.Name)
	}
	return tree, stats, nil
}

// Generate runs one pass for m.
func (g *Generator) Generate(ctx context.Context, m config.Module, opts Options) (*Result, error) {
	start := time.Now()
	op := logging.StartOperation(g.logger, "generate")

	res, err := g.generate(ctx, m, opts)
	duration := time.Since(start)
	g.metrics.Record(res, duration, err)
	if err != nil {
		g.errors.Handle(ctx, err)
		return nil, err
	}

	res.Duration = duration
	op.End(ctx, "module", res.Module, "constants", res.Stats.Constants, "written", res.Written)
	return res, nil
}

func (g *Generator) generate(ctx context.Context, m config.Module, opts Options) (*Result, error) {
	m.ApplyDefaults()

	tree, stats, err := g.Scan(ctx, m)
	if err != nil {
		return nil, err
	}

	prefix, err := embedPrefix(m)
	if err != nil {
		return nil, withModule(err, m.Name)
	}
	backend, err := assemble.BackendFor(m.Format, assemble.GoOptions{
		Package:     m.Package,
		Unexported:  m.Unexported,
		EmbedPrefix: prefix,
	})
	if err != nil {
		return nil, withModule(err, m.Name)
	}
	policy, err := assemble.ParseCollisionPolicy(m.Collision)
	if err != nil {
		return nil, withModule(errors.NewConfigError(errors.ErrCodeConfigInvalid, err.Error()), m.Name)
	}

	artifact, err := assemble.Assemble(tree, backend, assemble.Options{
		Collision: policy,
		Base:      filepath.ToSlash(m.Base),
	})
	if err != nil {
		return nil, withModule(err, m.Name)
	}

	res := &Result{
		Module:   m.Name,
		Output:   m.Output,
		Tree:     tree,
		Stats:    stats,
		Artifact: artifact,
	}
	if opts.DryRun {
		res.DryRun = true
		return res, nil
	}

	written, err := WriteIfChanged(m.Output, artifact)
	if err != nil {
		return nil, withModule(err, m.Name)
	}
	res.Written = written
	if written {
		g.logger.Info(ctx, "Generated module",
			"module", m.Name,
			"output", m.Output,
			"constants", stats.Constants,
			"fingerprint", artifact.Fingerprint,
		)
	} else {
		g.logger.Debug(ctx, "Output unchanged",
			"module", m.Name,
			"output", m.Output,
			"fingerprint", artifact.Fingerprint,
		)
	}
	return res, nil
}

// GenerateAll runs a pass for every module in order and stops at the first
// failure, returning the results completed before it.
func (g *Generator) GenerateAll(ctx context.Context, modules []config.Module, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(modules))
	for _, m := range modules {
		res, err := g.Generate(ctx, m, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// outputInBase returns the slash-separated path of m's output relative to
// its base directory, if the output lies inside it.
func outputInBase(m config.Module) (string, bool) {
	if m.Output == "" {
		return "", false
	}
	rel, err := relPath(m.Base, m.Output)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// embedPrefix returns the path from the output's directory to the base
// directory. Go embedding cannot reach outside the output's directory.
func embedPrefix(m config.Module) (string, error) {
	if m.Format != assemble.FormatGo {
		return "", nil
	}
	rel, err := relPath(filepath.Dir(m.Output), m.Base)
	if err != nil {
		return "", errors.ErrEmbedPath(m.Base, err.Error())
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.ErrEmbedPath(m.Base,
			"base directory is outside the directory of the generated file "+filepath.Dir(m.Output))
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}

func relPath(from, to string) (string, error) {
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return "", err
	}
	absTo, err := filepath.Abs(to)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absFrom, absTo)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func withModule(err error, module string) error {
	if ae, ok := err.(*errors.AssetError); ok && ae.Module == "" {
		return ae.WithModule(module)
	}
	return err
}
