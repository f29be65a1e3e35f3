package lambda

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracePath(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, "target", "app.txt"), TracePath(filepath.Join(dir, "target", "app.balx"), ""))
	assert.Equal(t, filepath.Join(dir, "app.trace"), TracePath(filepath.Join(dir, "app.balx"), ".trace"))
	assert.Equal(t, filepath.Join(dir, "app.txt"), TracePath(filepath.Join(dir, "app"), ""))
}

func TestWriteTrace_CreatesThenAppends(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.txt")

	// --- Act ---
	require.NoError(t, WriteTrace(path, "first\n"))
	require.NoError(t, WriteTrace(path, "second\n"))

	// --- Assert ---
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestTraceLine(t *testing.T) {
	rt := newFullRuntime()
	unit := rt.newUnit()
	res := &Result{
		Unit:       unit,
		Handlers:   []*ast.Function{rt.handler("h1"), rt.handler("h4")},
		EntryPoint: &ast.Function{Name: "__entry"},
	}

	assert.Equal(t, "example/orders:1.0.0 __entry h1,h4\n", TraceLine(res))
	assert.Equal(t, "example/orders:1.0.0 - \n", TraceLine(&Result{Unit: unit}))
}

func TestTraceDiagnostic(t *testing.T) {
	diag := TraceDiagnostic("/tmp/app.txt", errors.New("permission denied"))

	assert.Equal(t, hcl.DiagError, diag.Severity)
	assert.Contains(t, diag.Detail, "permission denied")
}
