package schema

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/hclx"
	"github.com/zclconf/go-cty/cty"
)

// FunctionResolver resolves a callee or a function reference. alias is
// empty for functions of the unit itself.
type FunctionResolver interface {
	ResolveFunction(alias, name string) (*ast.Symbol, bool)
}

// DecodeCalls appends one call statement per block to fn's body. Arguments
// are literals, references to fn's parameters, or references to functions.
func DecodeCalls(fn *ast.Function, calls []*CallBlock, res FunctionResolver) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, call := range calls {
		inv, cDiags := decodeCall(fn, call, res)
		diags = append(diags, cDiags...)
		if inv != nil {
			fn.Body.Add(&ast.ExpressionStmt{Expr: inv, Range: inv.Range})
		}
	}
	return diags
}

func decodeCall(fn *ast.Function, call *CallBlock, res FunctionResolver) (*ast.Invocation, hcl.Diagnostics) {
	rng := hclx.BodyRange(call.Remain)
	alias, name, ok := strings.Cut(call.Target, ".")
	if !ok {
		alias, name = "", call.Target
	}
	if (alias != "" && !hclsyntax.ValidIdentifier(alias)) || !hclsyntax.ValidIdentifier(name) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid call target",
			Detail:   fmt.Sprintf("%q must be a function name or alias.name.", call.Target),
			Subject:  rng.Ptr(),
		}}
	}

	callee, ok := res.ResolveFunction(alias, name)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown function",
			Detail:   fmt.Sprintf("The function %s is not declared or not exported by the imported package.", hclx.DisplayName(alias, name)),
			Subject:  rng.Ptr(),
		}}
	}

	var diags hcl.Diagnostics
	args := []ast.Expression{}
	if !hclx.IsNull(call.Args) {
		exprs, aDiags := hcl.ExprList(call.Args)
		if aDiags.HasErrors() {
			return nil, aDiags
		}
		for _, e := range exprs {
			arg, argDiags := decodeArg(fn, e, res)
			diags = append(diags, argDiags...)
			if arg != nil {
				args = append(args, arg)
			}
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	ret := ast.NilType
	if sig := callee.Type.Signature; sig != nil && sig.Return != nil {
		ret = sig.Return
	}
	return &ast.Invocation{PkgAlias: alias, Name: name, Symbol: callee, Args: args, Type: ret, Range: rng}, diags
}

func decodeArg(fn *ast.Function, expr hcl.Expression, res FunctionResolver) (ast.Expression, hcl.Diagnostics) {
	if trav, ok := expr.(*hclsyntax.ScopeTraversalExpr); ok {
		if len(trav.Traversal) == 1 {
			name := trav.Traversal.RootName()
			if sym, ok := fn.Symbol.Scope.Lookup(name); ok {
				return ast.NewVarRef(sym, expr.Range()), nil
			}
			if sym, ok := res.ResolveFunction("", name); ok {
				return ast.NewVarRef(sym, expr.Range()), nil
			}
		}
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown reference",
			Detail:   fmt.Sprintf("%s is neither a parameter of %q nor a function of this unit.", hclx.TraversalKey(trav.Traversal), fn.Name),
			Subject:  expr.Range().Ptr(),
		}}
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	t, ok := literalType(val)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid argument",
			Detail:   "Call arguments must be string, number or bool literals, or references.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return &ast.Literal{Value: val, Type: t, Range: expr.Range()}, nil
}

func literalType(val cty.Value) (*ast.Type, bool) {
	if val.IsNull() || !val.IsKnown() {
		return nil, false
	}
	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return ast.StringType, true
	case ty.Equals(cty.Bool):
		return ast.BooleanType, true
	case ty.Equals(cty.Number):
		if val.AsBigFloat().IsInt() {
			return ast.IntType, true
		}
		return ast.FloatType, true
	}
	return nil, false
}

