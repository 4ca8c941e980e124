// Package walker builds a namespace tree from a directory.
//
// The walk is depth-first and single-threaded. Entries of every directory
// are visited in byte order of their names, so an unchanged tree always
// produces the same namespace. Any directory that cannot be listed aborts
// the whole walk; files no rule classifies are skipped with a debug record.
package walker

import (
	"context"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/ident"
	"github.com/conneroisu/assetns/internal/logging"
	"github.com/conneroisu/assetns/internal/types"
)

// rootDir is the billy path of the base directory.
const rootDir = "."

// Stats summarizes one walk.
type Stats struct {
	// Dirs is the number of directories listed, the base included.
	Dirs int
	// Constants is the number of classified files.
	Constants int
	// Skipped counts unclassified files and entries that are neither
	// regular files nor directories.
	Skipped int
}

// Walker turns a directory tree into a *types.Namespace.
type Walker struct {
	fs      billy.Filesystem
	filters *filter.ClassifiedSet
	logger  logging.Logger
}

// New creates a walker over fs, whose root is the base directory. Every path
// handed to filters is relative to that root and uses forward slashes.
func New(fs billy.Filesystem, filters *filter.ClassifiedSet, logger logging.Logger) *Walker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Walker{
		fs:      fs,
		filters: filters,
		logger:  logger.WithComponent("walker"),
	}
}

// NewOS creates a walker over the directory base on the local filesystem.
func NewOS(base string, filters *filter.ClassifiedSet, logger logging.Logger) *Walker {
	return New(osfs.New(base), filters, logger)
}

// Walk traverses the base directory and returns the root namespace, whose
// identifier is the sanitized module identifier.
func (w *Walker) Walk(ctx context.Context, module string) (*types.Namespace, Stats, error) {
	var stats Stats
	root, err := w.walkDir(ctx, rootDir, ident.ToValid(module), &stats)
	if err != nil {
		return nil, stats, err
	}
	root.Source = ""
	return root, stats, nil
}

func (w *Walker) walkDir(ctx context.Context, dir, id string, stats *Stats) (*types.Namespace, error) {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.ErrReadDir(w.fs.Join(w.fs.Root(), dir), err)
	}
	stats.Dirs++

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	ns := &types.Namespace{Ident: id, Source: dir}
	for _, entry := range entries {
		rel := path.Join(dir, entry.Name())
		mode := entry.Mode()

		switch {
		case mode.IsDir():
			child, err := w.walkDir(ctx, rel, ident.ToValid(entry.Name()), stats)
			if err != nil {
				return nil, err
			}
			ns.Children = append(ns.Children, child)

		case mode.IsRegular():
			kind, ok := w.filters.Classify(rel)
			if !ok {
				stats.Skipped++
				w.logger.Debug(ctx, "Skipping unclassified file", "path", rel)
				continue
			}
			stats.Constants++
			ns.Children = append(ns.Children, &types.Constant{
				Ident:      ident.ToValid(ident.FileStem(entry.Name())),
				Kind:       kind,
				SourcePath: rel,
			})

		default:
			stats.Skipped++
			w.logger.Debug(ctx, "Skipping unsupported entry", "path", rel, "mode", describeMode(mode))
		}
	}
	return ns, nil
}

func describeMode(mode os.FileMode) string {
	switch {
	case mode&os.ModeSymlink != 0:
		return "symlink"
	case mode&os.ModeNamedPipe != 0:
		return "pipe"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode&os.ModeDevice != 0:
		return "device"
	default:
		return mode.String()
	}
}
