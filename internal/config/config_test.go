package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/lambdagen/internal/lambda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesDefaultIdentity(t *testing.T) {
	id, err := Default().Identity()

	require.NoError(t, err)
	assert.Equal(t, lambda.DefaultIdentity(), id)
	assert.NoError(t, Default().Validate())
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	// --- Arrange ---
	src := `
[runtime]
register_op = "__register"
process_op = "__process"
entry_point_id = "00000000-0000-0000-0000-000000000001"

[trace]
extension = ".trace"
`

	// --- Act ---
	cfg, err := Parse([]byte(src))

	// --- Assert ---
	require.NoError(t, err)
	id, err := cfg.Identity()
	require.NoError(t, err)
	assert.Equal(t, "ballerinax", id.Org)
	assert.Equal(t, "__register", id.RegisterOp)
	assert.Equal(t, "__process", id.ProcessOp)
	assert.Equal(t, "__00000000_0000_0000_0000_000000000001", id.EntryPoint)
	assert.Equal(t, ".trace", cfg.Trace.Extension)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "unknown key", src: "[runtime]\nflavour = \"x\"\n", msg: "flavour"},
		{name: "bad uuid", src: "[runtime]\nentry_point_id = \"nope\"\n", msg: "entry_point_id"},
		{name: "empty module", src: "[runtime]\nmodule = \"\"\n", msg: "module"},
		{name: "extension without dot", src: "[trace]\nextension = \"txt\"\n", msg: "trace.extension"},
		{name: "malformed toml", src: "[runtime\n", msg: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoad_ResolvesPackagePaths(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "lambdagen.toml")
	require.NoError(t, os.WriteFile(path, []byte("[packages]\npaths = [\"manifests\", \"/abs\"]\n"), 0o644))

	// --- Act ---
	cfg, err := Load(path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "manifests"), "/abs"}, cfg.Packages.Paths)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
