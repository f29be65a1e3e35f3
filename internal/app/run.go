package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/hclunit"
	"github.com/specialistvlad/lambdagen/internal/lambda"
	"github.com/specialistvlad/lambdagen/internal/report"
	"github.com/specialistvlad/lambdagen/internal/typecheck"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Run executes one pass over the configured sources and writes the report.
// The report is written even when an artifact could not be written; that
// error is then returned. Otherwise Run returns ErrFailed when the report
// contains errors.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	summary := &report.Summary{}
	writeErr, err := a.run(ctx, summary)
	if err != nil {
		return err
	}
	if err := a.formatter.Format(a.outW, summary); err != nil {
		return multierr.Append(writeErr, fmt.Errorf("failed to write report: %w", err))
	}

	a.logger.Debug("App.Run method finished.", zap.Bool("failed", summary.Failed()))
	if writeErr != nil {
		return writeErr
	}
	if summary.Failed() {
		return ErrFailed
	}
	return nil
}

// run fills summary. It returns the aggregated artifact write errors, and
// a non-nil err only when ctx is cancelled.
func (a *App) run(ctx context.Context, summary *report.Summary) (writeErr, err error) {
	units, diags := a.loader.Load(ctx, a.config.Paths...)
	summary.AddDiagnostics(diags)
	if len(units) == 0 {
		a.logger.Warn("No units found in source paths.", zap.Strings("paths", a.config.Paths))
	}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return writeErr, err
		}
		writeErr = multierr.Append(writeErr, a.processUnit(ctx, unit, summary))
	}

	if a.config.MetricsFile != "" {
		writeErr = multierr.Append(writeErr, a.metrics.WriteFile(a.config.MetricsFile))
	}
	if writeErr != nil {
		a.logger.Error("Failed to write artifacts.", zap.Error(writeErr))
	}
	return writeErr, nil
}

// processUnit runs the pass over one unit and writes its artifacts. The
// returned error is an artifact write failure; pass outcomes go to summary.
func (a *App) processUnit(ctx context.Context, unit *ast.Unit, summary *report.Summary) error {
	logger := ctxlog.FromContext(ctx).With(zap.Stringer("unit", unit.ID))

	start := time.Now()
	res, err := a.pass.Process(ctx, unit)
	a.metrics.Observe(res, err, time.Since(start))
	if res != nil {
		summary.AddResult(res)
	}
	if err != nil {
		logger.Error("Lambda pass failed.", zap.Error(err))
		summary.AddError(err)
		return nil
	}

	if res.EntryPoint == nil {
		return nil
	}

	if a.config.BinaryPath != "" {
		path := lambda.TracePath(a.config.BinaryPath, a.passCfg.Trace.Extension)
		if err := lambda.WriteTrace(path, lambda.TraceLine(res)); err != nil {
			logger.Error("Failed to write trace artifact.", zap.String("path", path), zap.Error(err))
			summary.AddDiagnostics(hcl.Diagnostics{lambda.TraceDiagnostic(path, err)})
		}
	}

	if diags := typecheck.Check(unit); diags.HasErrors() {
		err := &lambda.InternalError{Unit: unit.ID.String(), Op: "type check", Err: diags}
		logger.Error("Synthesized entry point failed type check.", zap.Error(err))
		summary.AddError(err)
		return nil
	}

	if a.config.OutDir == "" {
		return nil
	}
	src, err := hclunit.EmitEntryPoint(unit, res.EntryPoint)
	if err != nil {
		return fmt.Errorf("unit %s: %w", unit.ID, err)
	}
	path := filepath.Join(a.config.OutDir, OutputFileName(unit))
	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("unit %s: %w", unit.ID, err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("unit %s: %w", unit.ID, err)
	}
	logger.Debug("Entry point written.", zap.String("path", path))
	return nil
}

// OutputFileName is the name of the file a unit's entry point is written to,
// e.g. example_orders.gen.hcl for example/orders.
func OutputFileName(unit *ast.Unit) string {
	name := strings.NewReplacer("/", "_", ".", "_").Replace(unit.ID.Key())
	return name + hclunit.GeneratedSuffix
}
