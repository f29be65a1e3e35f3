package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/lambdagen/internal/app"
	"github.com/specialistvlad/lambdagen/internal/report"
	"github.com/specialistvlad/lambdagen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOrdersUnit = `
unit "example/orders" {
  version = "0.1.0"
}

import "ballerinax/awslambda" {}

function "createOrder" {
  public      = true
  annotations = [awslambda.Function]
  returns     = union(json, error)

  param "ctx" { type = awslambda.Context }
  param "input" { type = json }
}
`

func TestRun_WritesArtifacts(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"src/orders.hcl": testutil.OrdersUnit,
		"src/plain.hcl":  testutil.PlainUnit,
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.OutDir = filepath.Join(dir, "out")
		cfg.BinaryPath = filepath.Join(dir, "target", "orders.balx")
		cfg.MetricsFile = filepath.Join(dir, "metrics.prom")
	})

	// --- Assert ---
	// badOrder breaks the handler contract, so the run fails but still
	// produces the entry point for the valid handlers.
	require.ErrorIs(t, res.Err, app.ErrFailed)
	assert.Contains(t, res.Output, "Invalid function signature for an AWS lambda function")
	assert.Contains(t, res.Output, "handlers [createOrder, cancelOrder], 1 rejected, entry point __d47ff0e4_cb4f_40a7_acde_5daf8f50043c")
	assert.Contains(t, res.Output, "example/plain:0.1.0: handlers [none], 0 rejected, no entry point")

	gen, err := os.ReadFile(filepath.Join(res.Dir, "out", "example_orders.gen.hcl"))
	require.NoError(t, err)
	assert.Contains(t, string(gen), `call "awslambda.register"`)
	assert.Contains(t, string(gen), `call "awslambda.process"`)
	assert.NoFileExists(t, filepath.Join(res.Dir, "out", "example_plain.gen.hcl"))

	trace, err := os.ReadFile(filepath.Join(res.Dir, "target", "orders.txt"))
	require.NoError(t, err)
	assert.Equal(t, "example/orders:0.1.0 __d47ff0e4_cb4f_40a7_acde_5daf8f50043c createOrder,cancelOrder\n", string(trace))

	prom, err := os.ReadFile(filepath.Join(res.Dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "lambdagen_handlers_registered_total 2")
	assert.Contains(t, string(prom), "lambdagen_units_processed_total 2")
}

func TestRun_Success(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"src/orders.hcl": validOrdersUnit}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, func(_ string, cfg *app.Config) {
		cfg.Format = "json"
	})

	// --- Assert ---
	require.NoError(t, res.Err)
	var summary report.Summary
	require.NoError(t, json.Unmarshal([]byte(res.Output), &summary))
	require.Len(t, summary.Units, 1)
	assert.Equal(t, []string{"createOrder"}, summary.Units[0].Handlers)
	assert.NotEmpty(t, summary.Units[0].EntryPoint)
	assert.Empty(t, summary.Diagnostics)
	assert.Contains(t, res.LogOutput, "Lambda entry point synthesized.")
}

func TestRun_TraceAppends(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"src/orders.hcl": validOrdersUnit}
	configure := func(dir string, cfg *app.Config) {
		cfg.BinaryPath = filepath.Join(dir, "orders.balx")
	}
	res := testutil.RunIntegrationTest(t, files, configure)
	require.NoError(t, res.Err)
	tracePath := filepath.Join(res.Dir, "orders.txt")

	// --- Act ---
	err := res.App.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	trace, readErr := os.ReadFile(tracePath)
	require.NoError(t, readErr)
	assert.Equal(t, 2, strings.Count(string(trace), "\n"))
}

func TestRun_TraceFailureIsErrorDiagnostic(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"src/orders.hcl": validOrdersUnit,
		"blocker":        "not a directory",
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.BinaryPath = filepath.Join(dir, "blocker", "orders.balx")
	})

	// --- Assert ---
	require.ErrorIs(t, res.Err, app.ErrFailed)
	assert.Contains(t, res.Output, "Failed to write trace artifact")
	assert.Contains(t, res.Output, "entry point __d47ff0e4_cb4f_40a7_acde_5daf8f50043c")
}

func TestRun_ArtifactWriteFailureStillReports(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"src/orders.hcl": testutil.OrdersUnit,
		"blocker":        "not a directory",
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.OutDir = filepath.Join(dir, "blocker", "out")
		cfg.MetricsFile = filepath.Join(dir, "blocker", "metrics.prom")
	})

	// --- Assert ---
	require.Error(t, res.Err)
	assert.NotErrorIs(t, res.Err, app.ErrFailed)
	assert.Contains(t, res.Err.Error(), "example/orders")
	assert.Contains(t, res.Output, "Invalid function signature for an AWS lambda function")
	assert.Contains(t, res.Output, "handlers [createOrder, cancelOrder], 1 rejected")
}

func TestRun_SourceErrors(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"src/broken.hcl": testutil.BrokenUnit,
		"src/orders.hcl": validOrdersUnit,
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, nil)

	// --- Assert ---
	require.ErrorIs(t, res.Err, app.ErrFailed)
	assert.Contains(t, res.Output, "broken.hcl")
	assert.Contains(t, res.Output, "handlers [createOrder]")
}

func TestRun_EntryPointNameTakenIsInternalError(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"src/orders.hcl": validOrdersUnit + `
function "__d47ff0e4_cb4f_40a7_acde_5daf8f50043c" {}
`,
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.OutDir = filepath.Join(dir, "out")
	})

	// --- Assert ---
	require.ErrorIs(t, res.Err, app.ErrFailed)
	assert.Contains(t, res.Output, "Internal error:")
	assert.Contains(t, res.Output, "entry point already declared")
	assert.NoDirExists(t, filepath.Join(res.Dir, "out"))
}

func TestNewApp_UnknownFormat(t *testing.T) {
	// --- Arrange ---
	cfg, err := app.NewConfig(app.Config{Paths: []string{t.TempDir()}, Format: "xml"})
	require.NoError(t, err)

	// --- Act ---
	_, err = app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report format "xml"`)
}

func TestNewApp_RuntimeValidationFails(t *testing.T) {
	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"lambdagen.toml": "[runtime]\nregister_op = \"dispatch\"\n",
	})
	cfg, err := app.NewConfig(app.Config{
		Paths:      []string{dir},
		ConfigFile: filepath.Join(dir, "lambdagen.toml"),
	})
	require.NoError(t, err)

	// --- Act ---
	_, err = app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime package validation failed")
	assert.Contains(t, err.Error(), "dispatch")
}

func TestWatch_RerunsOnChange(t *testing.T) {
	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{"src/orders.hcl": validOrdersUnit})
	cfg, err := app.NewConfig(app.Config{
		Paths:         []string{filepath.Join(dir, "src")},
		WatchDebounce: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	a, err := app.NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan error, 8)
	done := make(chan error, 1)

	// --- Act ---
	go func() { done <- a.Watch(ctx, func(err error) { runs <- err }) }()

	// --- Assert ---
	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "plain.hcl"), []byte(testutil.PlainUnit), 0o644))
	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
