package hclunit

import (
	"github.com/specialistvlad/lambdagen/internal/ast"
)

// unitResolver resolves unqualified names in the unit scope and qualified
// names among the public exports of the import bound to the alias.
type unitResolver struct {
	unit *ast.Unit
}

func (r *unitResolver) ResolveType(alias, name string) (*ast.Symbol, bool) {
	return r.resolve(alias, name, ast.SymbolType)
}

func (r *unitResolver) ResolveAnnotation(alias, name string) (*ast.Symbol, bool) {
	return r.resolve(alias, name, ast.SymbolAnnotation)
}

func (r *unitResolver) ResolveFunction(alias, name string) (*ast.Symbol, bool) {
	return r.resolve(alias, name, ast.SymbolFunction)
}

func (r *unitResolver) resolve(alias, name string, kind ast.SymbolKind) (*ast.Symbol, bool) {
	var sym *ast.Symbol
	var ok bool
	if alias == "" {
		sym, ok = r.unit.Scope().Lookup(name)
	} else {
		imp := r.unit.ImportByAlias(alias)
		if imp == nil || imp.Symbol == nil {
			return nil, false
		}
		sym, ok = imp.Symbol.Scope.Lookup(name)
		if ok && !sym.IsPublic() {
			return nil, false
		}
	}
	if !ok || sym.Kind != kind {
		return nil, false
	}
	return sym, true
}
