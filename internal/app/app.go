package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/lambdagen/internal/config"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/hclunit"
	"github.com/specialistvlad/lambdagen/internal/lambda"
	"github.com/specialistvlad/lambdagen/internal/metrics"
	"github.com/specialistvlad/lambdagen/internal/registry"
	"github.com/specialistvlad/lambdagen/internal/report"
	"go.uber.org/zap"
)

// ErrFailed is returned by Run when the report contains an error diagnostic
// or an internal error.
var ErrFailed = errors.New("lambda pass reported errors")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *zap.Logger
	config    *Config
	passCfg   config.Config
	registry  *registry.Registry
	loader    *hclunit.Loader
	pass      *lambda.Pass
	metrics   *metrics.Recorder
	formatter report.Formatter
}

// NewApp is the constructor for the main application. The report goes to
// outW and logs go to logW. Package manifests are loaded and the runtime
// package is validated here, so a misconfigured toolchain fails before any
// unit is processed.
func NewApp(outW, logW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW, appConfig.LogFile)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	passCfg := config.Default()
	if appConfig.ConfigFile != "" {
		var err error
		passCfg, err = config.Load(appConfig.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load pass configuration: %w", err)
		}
		logger.Debug("Pass configuration loaded.", zap.String("file", appConfig.ConfigFile))
	}
	id, err := passCfg.Identity()
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	diags := reg.LoadBuiltins(ctx)
	manifestPaths := append(append([]string{}, passCfg.Packages.Paths...), appConfig.PackagePaths...)
	if len(manifestPaths) > 0 {
		diags = append(diags, reg.LoadManifests(ctx, manifestPaths...)...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load package manifests: %w", diags)
	}
	logger.Debug("Package registry populated.", zap.Int("packages", len(reg.Packages())))

	if err := reg.ValidateRuntime(ctx, id); err != nil {
		return nil, fmt.Errorf("runtime package validation failed: %w", err)
	}
	logger.Debug("Registry validation passed.")

	pass, err := lambda.New(id)
	if err != nil {
		return nil, err
	}

	formatter, ok := report.NewRegistry().Get(appConfig.Format)
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", appConfig.Format)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		passCfg:   passCfg,
		registry:  reg,
		loader:    hclunit.NewLoader(reg),
		pass:      pass,
		metrics:   metrics.New(),
		formatter: formatter,
	}, nil
}

// Registry returns the application's package registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close flushes the logger.
func (a *App) Close() error {
	// Sync fails on terminals and pipes; there is nothing useful to do about it.
	_ = a.logger.Sync()
	return nil
}
