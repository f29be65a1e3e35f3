// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// DefaultTraceExtension replaces the binary's extension in the trace path.
const DefaultTraceExtension = ".txt"

// TracePath derives the trace artifact path from the compiled binary's path
// by swapping its extension, e.g. target/app.balx -> target/app.txt.
func TracePath(binaryPath, ext string) string {
	if ext == "" {
		ext = DefaultTraceExtension
	}
	path := binaryPath
	if abs, err := filepath.Abs(binaryPath); err == nil {
		path = abs
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// TraceLine renders one trace record: `<unit> <entry point> <handler,...>`.
func TraceLine(res *Result) string {
	names := make([]string, 0, len(res.Handlers))
	for _, h := range res.Handlers {
		names = append(names, h.Name)
	}
	entry := "-"
	if res.EntryPoint != nil {
		entry = res.EntryPoint.Name
	}
	return fmt.Sprintf("%s %s %s\n", res.Unit.ID, entry, strings.Join(names, ","))
}

// WriteTrace appends content to path, creating the file and its parent
// directories when they do not exist.
func WriteTrace(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write trace file: %w", err)
	}
	return f.Close()
}

// TraceDiagnostic reports a trace write failure as an error diagnostic so
// the run continues with the remaining units.
func TraceDiagnostic(path string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Failed to write trace artifact",
		Detail:   fmt.Sprintf("Could not write %s: %v.", path, err),
	}
}
