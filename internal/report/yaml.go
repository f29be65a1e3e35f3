package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the summary as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format writes the summary.
func (f *YAMLFormatter) Format(w io.Writer, s *Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(s)
}
