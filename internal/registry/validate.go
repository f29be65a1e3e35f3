package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/lambda"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ValidateRuntime performs a parity check between the lambda identity and the
// registered runtime package. Every mismatch is reported, not just the first.
func (r *Registry) ValidateRuntime(ctx context.Context, id lambda.Identity) error {
	logger := ctxlog.FromContext(ctx)

	pkg, ok := r.Lookup(id.Org, id.Module)
	if !ok {
		return fmt.Errorf("runtime package %s is not registered", id.Package())
	}

	var err error
	expect := func(name string, kind ast.SymbolKind) *ast.Symbol {
		sym, ok := pkg.Scope.Lookup(name)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("runtime package %s does not export %s %q", pkg.Pkg, kind, name))
			return nil
		}
		if sym.Kind != kind {
			err = multierr.Append(err, fmt.Errorf("runtime package %s: %q is a %s, want %s", pkg.Pkg, name, sym.Kind, kind))
			return nil
		}
		return sym
	}

	if sym := expect(id.ContextType, ast.SymbolType); sym != nil && !sym.Type.Tag.IsUserDefined() {
		err = multierr.Append(err, fmt.Errorf("runtime package %s: %q must be a user-defined type", pkg.Pkg, id.ContextType))
	}
	expect(id.Annotation, ast.SymbolAnnotation)
	if sym := expect(id.RegisterOp, ast.SymbolFunction); sym != nil {
		err = multierr.Append(err, checkOperation(sym, ast.StringType, ast.FunctionType))
	}
	if sym := expect(id.ProcessOp, ast.SymbolFunction); sym != nil {
		err = multierr.Append(err, checkOperation(sym))
	}

	if err != nil {
		return err
	}
	logger.Debug("Runtime package validated.", zap.Stringer("package", pkg.Pkg))
	return nil
}

// checkOperation checks that an operation takes exactly the given parameter
// tags and returns nil.
func checkOperation(sym *ast.Symbol, params ...*ast.Type) error {
	sig := sym.Type.Signature
	if sig == nil {
		return fmt.Errorf("runtime operation %s has no signature", sym.QualifiedName())
	}
	if len(sig.Params) != len(params) || sig.Rest != nil {
		return fmt.Errorf("runtime operation %s must take %d parameters, has signature %s", sym.QualifiedName(), len(params), sig)
	}
	for i, want := range params {
		if sig.Params[i] == nil || sig.Params[i].Tag != want.Tag {
			return fmt.Errorf("runtime operation %s: parameter %d must be %s, got %s", sym.QualifiedName(), i+1, want, sig.Params[i])
		}
	}
	if sig.Return != nil && sig.Return.Tag != ast.TagNil {
		return fmt.Errorf("runtime operation %s must not return a value, returns %s", sym.QualifiedName(), sig.Return)
	}
	return nil
}
