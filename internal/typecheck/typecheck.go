// Package typecheck re-verifies function bodies after synthesis: every call
// resolves to a function and passes arguments that fit its signature.
package typecheck

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
)

// Check verifies every call statement of every function in unit.
func Check(unit *ast.Unit) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, fn := range unit.Functions {
		if fn.Body == nil {
			continue
		}
		for _, stmt := range fn.Body.Stmts {
			diags = append(diags, checkStmt(fn, stmt)...)
		}
	}
	return diags
}

func checkStmt(fn *ast.Function, stmt ast.Statement) hcl.Diagnostics {
	es, ok := stmt.(*ast.ExpressionStmt)
	if !ok {
		return hcl.Diagnostics{failure(fn, stmt.NodeRange(), fmt.Sprintf("unsupported statement %T", stmt))}
	}
	call, ok := es.Expr.(*ast.Invocation)
	if !ok {
		return hcl.Diagnostics{failure(fn, es.Range, "expression statements must be calls")}
	}
	return checkCall(fn, call)
}

func checkCall(fn *ast.Function, call *ast.Invocation) hcl.Diagnostics {
	if call.Symbol == nil || call.Symbol.Kind != ast.SymbolFunction {
		return hcl.Diagnostics{failure(fn, call.Range, fmt.Sprintf("call to %s does not resolve to a function", call))}
	}
	sig := call.Symbol.Type.Signature
	if sig == nil {
		return hcl.Diagnostics{failure(fn, call.Range, fmt.Sprintf("callee of %s has no signature", call))}
	}

	n := len(call.Args)
	if n < len(sig.Params) || (sig.Rest == nil && n > len(sig.Params)) {
		return hcl.Diagnostics{failure(fn, call.Range,
			fmt.Sprintf("%s passes %d arguments to %s%s", call, n, call.Symbol.QualifiedName(), sig))}
	}

	var diags hcl.Diagnostics
	for i, arg := range call.Args {
		want := sig.Rest
		if i < len(sig.Params) {
			want = sig.Params[i]
		}
		if ref, ok := arg.(*ast.VarRef); ok && ref.Symbol == nil {
			diags = append(diags, failure(fn, arg.NodeRange(), fmt.Sprintf("reference %s is unresolved", ref.Name)))
			continue
		}
		got := arg.ResolvedType()
		if !Assignable(got, want) {
			diags = append(diags, failure(fn, arg.NodeRange(),
				fmt.Sprintf("argument %d of %s has type %s, want %s", i+1, call, got, want)))
		}
	}
	return diags
}

func failure(fn *ast.Function, rng hcl.Range, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Type check failed",
		Detail:   fmt.Sprintf("In function %q: %s.", fn.Name, detail),
		Subject:  rng.Ptr(),
	}
}

// Assignable reports whether a value of type src may be passed where dst is
// expected.
func Assignable(src, dst *ast.Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if dst.Tag == ast.TagAny {
		return true
	}
	if src.Tag == ast.TagUnion {
		for _, m := range src.Members {
			if !Assignable(m, dst) {
				return false
			}
		}
		return len(src.Members) > 0
	}

	switch dst.Tag {
	case ast.TagUnion:
		for _, m := range dst.Members {
			if Assignable(src, m) {
				return true
			}
		}
		return false
	case ast.TagJSON:
		switch src.Tag {
		case ast.TagNil, ast.TagBoolean, ast.TagInt, ast.TagFloat, ast.TagString, ast.TagJSON:
			return true
		}
		return false
	case ast.TagFunction:
		// A bare function type accepts any function value.
		return src.Tag == ast.TagFunction && (dst.Signature == nil || sameSignature(src.Signature, dst.Signature))
	case ast.TagObject, ast.TagRecord:
		return src.Tag == dst.Tag && src.Symbol == dst.Symbol
	}
	return src.Tag == dst.Tag
}

func sameSignature(a, b *ast.Signature) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
