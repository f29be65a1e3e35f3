package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/lambdagen/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// WriteFiles writes files, keyed by slash-separated relative path, under a
// fresh temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RunIntegrationTest writes files to a temporary tree, points the app at its
// "src" directory and runs one pass. configure may adjust the config; paths
// in it are relative to the tree root until it returns.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(dir string, cfg *app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg := app.Config{
		Paths:     []string{filepath.Join(dir, "src")},
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if configure != nil {
		configure(dir, &cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	res := &HarnessResult{Dir: dir}

	res.App, res.Err = app.NewApp(out, logs, appConfig)
	if res.Err == nil {
		res.Err = res.App.Run(context.Background())
		_ = res.App.Close()
	}

	res.Output = out.String()
	res.LogOutput = logs.String()
	if os.Getenv("LAMBDAGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
	}
	return res
}
