package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/assetns/internal/assemble"
	"github.com/conneroisu/assetns/internal/errors"
)

func artifact(content string) *assemble.Artifact {
	return &assemble.Artifact{
		Format:      assemble.FormatJSON,
		Content:     []byte(content),
		Fingerprint: assemble.Fingerprint([]byte(content)),
	}
}

func TestWriteIfChangedMemFS(t *testing.T) {
	fs := memfs.New()

	written, err := writeIfChanged(fs, "out.json", artifact("{}"))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = writeIfChanged(fs, "out.json", artifact("{}"))
	require.NoError(t, err)
	assert.False(t, written)

	written, err = writeIfChanged(fs, "out.json", artifact(`{"a":1}`))
	require.NoError(t, err)
	assert.True(t, written)

	content, err := util.ReadFile(fs, "out.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(content))
}

func TestWriteIfChangedComparesContent(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "out.json", []byte("{}"), 0o644))

	// A matching fingerprint alone does not make the output current.
	stale := artifact(`{"a":1}`)
	stale.Fingerprint = assemble.Fingerprint([]byte("{}"))

	written, err := writeIfChanged(fs, "out.json", stale)
	require.NoError(t, err)
	assert.True(t, written)

	content, err := util.ReadFile(fs, "out.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(content))
}

func TestWriteIfChangedCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")

	written, err := WriteIfChanged(path, artifact("{}"))
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestWriteIfChangedError(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the output file cannot be read or replaced.
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := WriteIfChanged(path, artifact("{}"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeWriteOutput, errors.CodeOf(err))
}
