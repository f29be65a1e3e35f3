package app

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // unit sources: .hcl files or directories

	ConfigFile   string   // optional TOML pass config
	PackagePaths []string // extra package manifests
	BinaryPath   string   // enables the trace artifact
	OutDir       string   // where synthesized entry points are written
	Format       string   // report format: text, json or yaml
	MetricsFile  string

	LogFormat string
	LogLevel  string
	LogFile   string

	Watch         bool
	WatchDebounce time.Duration
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// DefaultWatchDebounce is how long watch mode waits for changes to settle.
const DefaultWatchDebounce = 200 * time.Millisecond

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one source path is required")
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q: must be one of %v", cfg.LogFormat, logFormats)
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = DefaultWatchDebounce
	}
	return &cfg, nil
}
