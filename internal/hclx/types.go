// This file contains the logic for decoding HCL type expressions (e.g., `json`,
// `awslambda.Context`, `union(json, error)`) into resolved ast.TypeNodes.

package hclx

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/lambdagen/internal/ast"
)

// TypeResolver resolves a user-defined type name. alias is empty for names
// declared in the current unit or package.
type TypeResolver interface {
	ResolveType(alias, name string) (*ast.Symbol, bool)
}

// TypeExpr converts an HCL type expression into a resolved type node.
func TypeExpr(expr hcl.Expression, resolver TypeResolver) (*ast.TypeNode, hcl.Diagnostics) {
	if expr == nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing type",
			Detail:   "A type expression is required here.",
		}}
	}

	// The concrete expression kinds decide which type node variant is produced.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if v.Name != "union" {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown type constructor",
				Detail:   fmt.Sprintf("The type constructor %q is not supported; only union(...) is.", v.Name),
				Subject:  v.NameRange.Ptr(),
			}}
		}
		if len(v.Args) == 0 {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Empty union",
				Detail:   "union(...) requires at least one member type.",
				Subject:  v.Range().Ptr(),
			}}
		}

		var diags hcl.Diagnostics
		members := make([]*ast.TypeNode, 0, len(v.Args))
		for _, arg := range v.Args {
			member, memberDiags := TypeExpr(arg, resolver)
			diags = append(diags, memberDiags...)
			if member != nil {
				members = append(members, member)
			}
		}
		if diags.HasErrors() {
			return nil, diags
		}
		return ast.NewUnionTypeNode(members, v.Range()), diags

	case *hclsyntax.LiteralValueExpr:
		// `null` is accepted as the nil type.
		if v.Val.IsNull() {
			return ast.NewBuiltinTypeNode(ast.NilType, v.Range()), nil
		}
		return nil, invalidTypeExpr(expr)

	case *hclsyntax.ScopeTraversalExpr:
		alias, name, diags := QualifiedName(v)
		if diags.HasErrors() {
			return nil, diags
		}
		if alias == "" {
			if builtin, ok := ast.BuiltinType(name); ok {
				return ast.NewBuiltinTypeNode(builtin, v.Range()), nil
			}
		}
		return userDefinedType(alias, name, v.Range(), resolver)

	default:
		return nil, invalidTypeExpr(expr)
	}
}

func userDefinedType(alias, name string, rng hcl.Range, resolver TypeResolver) (*ast.TypeNode, hcl.Diagnostics) {
	display := DisplayName(alias, name)
	if resolver == nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown type",
			Detail:   fmt.Sprintf("The type %q is not a builtin type.", display),
			Subject:  rng.Ptr(),
		}}
	}
	sym, ok := resolver.ResolveType(alias, name)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown type",
			Detail:   fmt.Sprintf("The type %q is not declared or not exported by the imported package.", display),
			Subject:  rng.Ptr(),
		}}
	}
	return ast.NewUserDefinedTypeNode(alias, sym, rng), nil
}

func invalidTypeExpr(expr hcl.Expression) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid type specification",
		Detail:   "A type must be a keyword such as json, a name such as awslambda.Context, or union(...).",
		Subject:  expr.Range().Ptr(),
	}}
}
