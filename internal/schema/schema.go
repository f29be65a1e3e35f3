package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Unit source files ---

// UnitFileSchema lists the top-level blocks of a unit source file.
var UnitFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "unit", LabelNames: []string{"id"}},
		{Type: "import", LabelNames: []string{"path"}},
		{Type: "type", LabelNames: []string{"name"}},
		{Type: "function", LabelNames: []string{"name"}},
	},
}

// UnitBody is the content of a `unit "org/name"` block.
type UnitBody struct {
	Version string `hcl:"version,optional"`
}

// ImportBody is the content of an `import "org/name"` block. As overrides
// the alias, which defaults to the last name component.
type ImportBody struct {
	As      string `hcl:"as,optional"`
	Version string `hcl:"version,optional"`
}

// TypeBody is the content of a `type "Name"` block.
type TypeBody struct {
	// Kind is "record" or "object"; it defaults to "record".
	Kind string `hcl:"kind,optional"`
}

// --- Package manifests ---

// ManifestFileSchema lists the top-level blocks of a package manifest.
var ManifestFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "package", LabelNames: []string{"path"}},
	},
}

// PackageSchema lists the content of a `package "org/name"` block.
var PackageSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "version"},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "type", LabelNames: []string{"name"}},
		{Type: "annotation", LabelNames: []string{"name"}},
		{Type: "function", LabelNames: []string{"name"}},
	},
}

// AnnotationBody is the content of an `annotation "Name"` block.
type AnnotationBody struct {
	Description string `hcl:"description,optional"`
}

// --- Shared declarations ---

// FunctionBody is the content of a `function "name"` block.
type FunctionBody struct {
	Public      *bool          `hcl:"public,optional"`
	Annotations hcl.Expression `hcl:"annotations,optional"`
	Returns     hcl.Expression `hcl:"returns,optional"`
	Description string         `hcl:"description,optional"`
	Params      []*ParamBlock  `hcl:"param,block"`
	Defaultable []*ParamBlock  `hcl:"defaultable,block"`
	Rest        *ParamBlock    `hcl:"rest,block"`
	Calls       []*CallBlock   `hcl:"call,block"`
}

// ParamBlock is a `param`, `defaultable` or `rest` block.
type ParamBlock struct {
	Name    string         `hcl:"name,label"`
	Type    hcl.Expression `hcl:"type"`
	Default hcl.Expression `hcl:"default,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

// CallBlock is a `call "alias.name"` statement in a function body.
type CallBlock struct {
	Target string         `hcl:"target,label"`
	Args   hcl.Expression `hcl:"args,optional"`
	Remain hcl.Body       `hcl:",remain"`
}
