package hclx

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed.",
					Subject:  &block.DefRange,
				})
				continue
			}
			found = block
		}
	}

	return found, diags
}

// OptionalBool decodes a boolean attribute, returning def when it is absent.
func OptionalBool(attrs hcl.Attributes, name string, def bool) (bool, hcl.Diagnostics) {
	attr, ok := attrs[name]
	if !ok {
		return def, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return def, diags
	}
	if val.IsNull() || !val.Type().Equals(cty.Bool) {
		return def, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "The \"" + name + "\" attribute must be a boolean.",
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return val.True(), nil
}

// OptionalString decodes a string attribute, returning def when it is absent.
func OptionalString(attrs hcl.Attributes, name string, def string) (string, hcl.Diagnostics) {
	attr, ok := attrs[name]
	if !ok {
		return def, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return def, diags
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return def, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "The \"" + name + "\" attribute must be a string.",
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}

// IsNull reports whether an optional expression attribute is absent or a
// literal null. gohcl decodes a missing hcl.Expression attribute as a static
// null expression.
func IsNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

// BodyRange returns the source range of a native-syntax body, or its missing
// item range for other syntaxes.
func BodyRange(body hcl.Body) hcl.Range {
	if body == nil {
		return hcl.Range{}
	}
	if sb, ok := body.(*hclsyntax.Body); ok {
		return sb.SrcRange
	}
	return body.MissingItemRange()
}
