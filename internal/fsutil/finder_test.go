package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	writeTree(t, root, "b.hcl", "a/c.hcl", "a/notes.txt")

	// --- Act ---
	files, err := FindFilesByExtension(root, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "c.hcl"), filepath.Join(root, "b.hcl")}, files)
}

func TestFindFilesByExtension_FileRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "unit.hcl")

	files, err := FindFilesByExtension(filepath.Join(root, "unit.hcl"), ".hcl")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "unit.hcl")}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	assert.Error(t, err)
}

func TestFindAll_Deduplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "x/a.hcl", "y/b.hcl")

	files, err := FindAll([]string{root, filepath.Join(root, "x")}, ".hcl")

	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "x/a.hcl", "single.hcl")

	dirs, err := Dirs([]string{filepath.Join(root, "x"), filepath.Join(root, "single.hcl")})

	require.NoError(t, err)
	assert.Equal(t, []string{root, filepath.Join(root, "x")}, dirs)
}
