package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// TextFormatter renders diagnostics the way HCL tools do, followed by one
// line per unit.
type TextFormatter struct {
	// Files provides source snippets for diagnostics; it may be nil.
	Files map[string]*hcl.File
	Width uint
}

// NewTextFormatter creates a text formatter without source snippets.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{Width: 100}
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the summary.
func (f *TextFormatter) Format(w io.Writer, s *Summary) error {
	if len(s.diags) > 0 {
		dw := hcl.NewDiagnosticTextWriter(w, f.Files, f.Width, false)
		if err := dw.WriteDiagnostics(s.diags); err != nil {
			return err
		}
	}
	for _, e := range s.Errors {
		if _, err := fmt.Fprintf(w, "Internal error: %s\n", e); err != nil {
			return err
		}
	}
	for _, u := range s.Units {
		entry := "no entry point"
		if u.EntryPoint != "" {
			entry = "entry point " + u.EntryPoint
		}
		handlers := "none"
		if len(u.Handlers) > 0 {
			handlers = strings.Join(u.Handlers, ", ")
		}
		if _, err := fmt.Fprintf(w, "%s: handlers [%s], %d rejected, %s\n", u.Unit, handlers, u.Rejected, entry); err != nil {
			return err
		}
	}
	return nil
}
