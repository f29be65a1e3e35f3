package hclx

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an hcl.Traversal,
// suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., awslambda.Function
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// QualifiedName splits a reference such as `awslambda.Function` or `Order`
// into an optional import alias and a name. Anything longer than two plain
// segments is rejected.
func QualifiedName(expr hcl.Expression) (alias, name string, diags hcl.Diagnostics) {
	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() {
		return "", "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   "A reference must be a name or an alias-qualified name such as awslambda.Function.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	switch len(traversal) {
	case 1:
		return "", traversal.RootName(), nil
	case 2:
		if attr, ok := traversal[1].(hcl.TraverseAttr); ok {
			return traversal.RootName(), attr.Name, nil
		}
	}

	return "", "", hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid reference",
		Detail:   "The reference " + TraversalKey(traversal) + " has too many parts; use alias.Name.",
		Subject:  expr.Range().Ptr(),
	}}
}

// ReferenceList decodes a tuple of references such as `[awslambda.Function, deprecated]`.
func ReferenceList(expr hcl.Expression) ([]hcl.Expression, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}
	return exprs, nil
}

// DisplayName renders a reference the way it is written in source.
func DisplayName(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias + "." + name
}
