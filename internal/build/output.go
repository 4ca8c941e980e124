package build

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/conneroisu/assetns/internal/assemble"
	"github.com/conneroisu/assetns/internal/errors"
)

// WriteIfChanged writes artifact to path unless the file already holds the
// same content. It reports whether the file was written.
func WriteIfChanged(path string, artifact *assemble.Artifact) (bool, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	fs := osfs.New(dir)
	if err := fs.MkdirAll(".", 0o755); err != nil {
		return false, writeError(path, err)
	}
	return writeIfChanged(fs, name, artifact)
}

func writeIfChanged(fs billy.Filesystem, name string, artifact *assemble.Artifact) (bool, error) {
	existing, err := readFile(fs, name)
	switch {
	case err == nil:
		if bytes.Equal(existing, artifact.Content) {
			return false, nil
		}
	case !os.IsNotExist(err):
		return false, writeError(fs.Join(fs.Root(), name), err)
	}

	if err := util.WriteFile(fs, name, artifact.Content, 0o644); err != nil {
		return false, writeError(fs.Join(fs.Root(), name), err)
	}
	return true, nil
}

func readFile(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeError(path string, cause error) error {
	return errors.NewIOError(errors.ErrCodeWriteOutput, "cannot write output", cause).WithPath(path)
}
