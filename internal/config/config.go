package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/specialistvlad/lambdagen/internal/lambda"
)

// Config is the pass configuration.
type Config struct {
	Runtime  Runtime  `toml:"runtime"`
	Trace    Trace    `toml:"trace"`
	Packages Packages `toml:"packages"`
}

// Runtime identifies the runtime-support package and the names the pass
// matches on or emits.
type Runtime struct {
	Org          string `toml:"org"`
	Module       string `toml:"module"`
	Annotation   string `toml:"annotation"`
	ContextType  string `toml:"context_type"`
	RegisterOp   string `toml:"register_op"`
	ProcessOp    string `toml:"process_op"`
	EntryPointID string `toml:"entry_point_id"`
}

// Trace configures the trace artifact written next to the compiled binary.
type Trace struct {
	Extension string `toml:"extension"`
}

// Packages lists extra package manifest locations. Relative paths are
// resolved against the directory of the config file.
type Packages struct {
	Paths []string `toml:"paths"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	id := lambda.DefaultIdentity()
	return Config{
		Runtime: Runtime{
			Org:          id.Org,
			Module:       id.Module,
			Annotation:   id.Annotation,
			ContextType:  id.ContextType,
			RegisterOp:   id.RegisterOp,
			ProcessOp:    id.ProcessOp,
			EntryPointID: lambda.DefaultEntryPointID.String(),
		},
		Trace: Trace{Extension: lambda.DefaultTraceExtension},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, p := range cfg.Packages.Paths {
		if !filepath.IsAbs(p) {
			cfg.Packages.Paths[i] = filepath.Join(base, p)
		}
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, errors.New(strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if _, err := c.Identity(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Trace.Extension, ".") || len(c.Trace.Extension) < 2 {
		return fmt.Errorf("trace.extension must start with a dot, got %q", c.Trace.Extension)
	}
	return nil
}

// Identity builds the lambda identity from the runtime section.
func (c Config) Identity() (lambda.Identity, error) {
	entryID, err := uuid.Parse(c.Runtime.EntryPointID)
	if err != nil {
		return lambda.Identity{}, fmt.Errorf("runtime.entry_point_id: %w", err)
	}
	id := lambda.Identity{
		Org:         c.Runtime.Org,
		Module:      c.Runtime.Module,
		Annotation:  c.Runtime.Annotation,
		ContextType: c.Runtime.ContextType,
		RegisterOp:  c.Runtime.RegisterOp,
		ProcessOp:   c.Runtime.ProcessOp,
		EntryPoint:  lambda.EntryPointName(entryID),
	}
	if err := id.Validate(); err != nil {
		return lambda.Identity{}, err
	}
	return id, nil
}
