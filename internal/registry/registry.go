package registry

import (
	"fmt"

	"github.com/specialistvlad/lambdagen/internal/ast"
)

// Registry holds package symbols keyed by `org/name`.
type Registry struct {
	packages map[string]*ast.Symbol
	order    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{packages: make(map[string]*ast.Symbol)}
}

// Register adds a package symbol. It panics if the symbol is not a package or
// if a package with the same org/name is already registered.
func (r *Registry) Register(pkg *ast.Symbol) {
	if pkg == nil || pkg.Kind != ast.SymbolPackage {
		panic(fmt.Sprintf("registry: %v is not a package symbol", pkg))
	}
	key := pkg.Pkg.Key()
	if _, exists := r.packages[key]; exists {
		panic(fmt.Sprintf("package '%s' already registered", key))
	}
	r.packages[key] = pkg
	r.order = append(r.order, key)
}

// Lookup returns the package registered as org/name.
func (r *Registry) Lookup(org, name string) (*ast.Symbol, bool) {
	pkg, ok := r.packages[org+"/"+name]
	return pkg, ok
}

// Has reports whether org/name is registered.
func (r *Registry) Has(org, name string) bool {
	_, ok := r.Lookup(org, name)
	return ok
}

// Packages returns the registered packages in registration order.
func (r *Registry) Packages() []*ast.Symbol {
	pkgs := make([]*ast.Symbol, 0, len(r.order))
	for _, key := range r.order {
		pkgs = append(pkgs, r.packages[key])
	}
	return pkgs
}
