// Package report renders the outcome of a run in text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/lambda"
)

// Summary is the outcome of one run over a set of units.
type Summary struct {
	Units       []UnitReport `json:"units" yaml:"units"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Errors      []string     `json:"errors,omitempty" yaml:"errors,omitempty"`

	// diags keeps the source diagnostics for the text formatter.
	diags hcl.Diagnostics
}

// UnitReport describes one unit.
type UnitReport struct {
	Unit       string   `json:"unit" yaml:"unit"`
	Files      []string `json:"files" yaml:"files"`
	Handlers   []string `json:"handlers" yaml:"handlers"`
	EntryPoint string   `json:"entry_point,omitempty" yaml:"entry_point,omitempty"`
	Rejected   int      `json:"rejected" yaml:"rejected"`
}

// Diagnostic is a flattened hcl.Diagnostic.
type Diagnostic struct {
	Severity  string `json:"severity" yaml:"severity"`
	Summary   string `json:"summary" yaml:"summary"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	Line      int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column    int    `json:"column,omitempty" yaml:"column,omitempty"`
	Violation string `json:"violation,omitempty" yaml:"violation,omitempty"`
}

// AddResult records the outcome of the pass over one unit.
func (s *Summary) AddResult(res *lambda.Result) {
	ur := UnitReport{
		Unit:     res.Unit.ID.String(),
		Files:    res.Unit.Files,
		Handlers: make([]string, 0, len(res.Handlers)),
		Rejected: len(res.Diagnostics),
	}
	for _, h := range res.Handlers {
		ur.Handlers = append(ur.Handlers, h.Name)
	}
	if res.EntryPoint != nil {
		ur.EntryPoint = res.EntryPoint.Name
	}
	s.Units = append(s.Units, ur)
	s.AddDiagnostics(res.Diagnostics)
}

// AddDiagnostics records diagnostics not tied to a pass result.
func (s *Summary) AddDiagnostics(diags hcl.Diagnostics) {
	for _, d := range diags {
		s.diags = append(s.diags, d)
		s.Diagnostics = append(s.Diagnostics, flatten(d))
	}
}

// AddError records an internal error.
func (s *Summary) AddError(err error) {
	s.Errors = append(s.Errors, err.Error())
}

// Failed reports whether the run produced an error diagnostic or an internal error.
func (s *Summary) Failed() bool {
	return len(s.Errors) > 0 || s.diags.HasErrors()
}

// SourceDiagnostics returns the recorded diagnostics.
func (s *Summary) SourceDiagnostics() hcl.Diagnostics {
	return s.diags
}

func flatten(d *hcl.Diagnostic) Diagnostic {
	out := Diagnostic{Summary: d.Summary, Detail: d.Detail, Severity: "error"}
	switch d.Severity {
	case hcl.DiagWarning:
		out.Severity = "warning"
	case hcl.DiagInvalid:
		out.Severity = "invalid"
	}
	if d.Subject != nil {
		out.File = d.Subject.Filename
		out.Line = d.Subject.Start.Line
		out.Column = d.Subject.Start.Column
	}
	if v, ok := lambda.ViolationOf(d); ok {
		out.Violation = v.String()
	}
	return out
}

// Formatter renders a summary.
type Formatter interface {
	Name() string
	Format(w io.Writer, s *Summary) error
}

// Registry maps format names to formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry returns a registry with the text, json and yaml formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[string]Formatter)}
	for _, f := range []Formatter{NewTextFormatter(), NewJSONFormatter(), NewYAMLFormatter()} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a formatter.
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Name()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Name())
	}
	r.formatters[f.Name()] = f
	return nil
}

// Get returns the formatter called name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
