package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/lambdagen/internal/app"
	"github.com/specialistvlad/lambdagen/internal/report"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `lambdagen finds functions annotated as AWS lambda handlers in HCL units,
checks that each has the handler signature (Context, json) -> json|error,
and appends an entry point that registers every valid handler with the
lambda runtime and starts its event loop.

Arguments:
  PATH  A unit .hcl file or a directory searched recursively for them.

Exit codes:
  0  success
  1  a diagnostic error or an internal error was reported
  2  invalid usage`

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var (
		cfg    app.Config
		parsed *app.Config
	)

	cmd := &cobra.Command{
		Use:           "lambdagen [flags] PATH...",
		Short:         "Synthesize AWS lambda entry points for annotated handlers",
		Long:          longHelp,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 {
				_ = cmd.Usage()
				return errors.New("at least one PATH is required")
			}
			cfg.Paths = paths
			cfg.Format = strings.ToLower(cfg.Format)
			cfg.LogFormat = strings.ToLower(cfg.LogFormat)
			cfg.LogLevel = strings.ToLower(cfg.LogLevel)

			if _, ok := report.NewRegistry().Get(cfg.Format); !ok {
				return fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, report.NewRegistry().Names())
			}
			c, err := app.NewConfig(cfg)
			if err != nil {
				return err
			}
			parsed = c
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "Pass configuration file (TOML).")
	flags.StringArrayVar(&cfg.PackagePaths, "packages", nil, "Extra package manifest file or directory. Repeatable.")
	flags.StringVar(&cfg.BinaryPath, "binary", "", "Path of the compiled binary; enables the trace artifact next to it.")
	flags.StringVarP(&cfg.OutDir, "out", "o", "", "Directory to write each synthesized entry point to as <unit>.gen.hcl.")
	flags.StringVarP(&cfg.Format, "format", "f", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this file, rotated by size.")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write pass metrics to this file in the Prometheus text format.")
	flags.BoolVarP(&cfg.Watch, "watch", "w", false, "Re-run whenever a unit source changes, until interrupted.")
	flags.DurationVar(&cfg.WatchDebounce, "watch-debounce", app.DefaultWatchDebounce, "How long to wait for changes to settle in watch mode.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if parsed == nil {
		// Help was printed.
		return nil, true, nil
	}
	return parsed, false, nil
}
