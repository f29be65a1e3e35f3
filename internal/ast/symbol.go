// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines symbols and the scopes that hold them.
package ast

import (
	"fmt"

	"github.com/specialistvlad/lambdagen/internal/pkgid"
)

// SymbolKind is the kind of entity a symbol names.
type SymbolKind int

const (
	SymbolPackage SymbolKind = iota
	SymbolFunction
	SymbolType
	SymbolAnnotation
	SymbolParameter
)

// String returns a short name for the kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolPackage:
		return "package"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolAnnotation:
		return "annotation"
	case SymbolParameter:
		return "parameter"
	}
	return "unknown"
}

// Flag is a declaration modifier bit.
type Flag uint32

const (
	FlagPublic Flag = 1 << iota
)

// Symbol is a resolved name. Pkg is the package that defines it. Scope is set
// for packages (their exported names) and for functions (their parameters).
type Symbol struct {
	Kind  SymbolKind
	Name  string
	Pkg   pkgid.ID
	Flags Flag
	Type  *Type
	Scope *Scope
}

// NewPackageSymbol creates a package symbol with an empty exported scope.
func NewPackageSymbol(id pkgid.ID) *Symbol {
	sym := &Symbol{Kind: SymbolPackage, Name: id.Name, Pkg: id, Flags: FlagPublic}
	sym.Scope = NewScope(sym)
	return sym
}

// NewFunctionSymbol creates a function symbol owned by pkg.
func NewFunctionSymbol(name string, pkg pkgid.ID, flags Flag, sig *Signature) *Symbol {
	sym := &Symbol{Kind: SymbolFunction, Name: name, Pkg: pkg, Flags: flags, Type: NewFunctionType(sig)}
	sym.Scope = NewScope(sym)
	return sym
}

// NewTypeSymbol creates a user-defined type symbol. The tag must be TagObject or TagRecord.
func NewTypeSymbol(name string, pkg pkgid.ID, tag TypeTag) *Symbol {
	if !tag.IsUserDefined() {
		panic(fmt.Sprintf("ast: type symbol %q cannot have builtin tag %s", name, tag))
	}
	sym := &Symbol{Kind: SymbolType, Name: name, Pkg: pkg, Flags: FlagPublic}
	sym.Type = &Type{Tag: tag, Symbol: sym}
	return sym
}

// NewAnnotationSymbol creates an annotation symbol owned by pkg.
func NewAnnotationSymbol(name string, pkg pkgid.ID) *Symbol {
	return &Symbol{Kind: SymbolAnnotation, Name: name, Pkg: pkg, Flags: FlagPublic}
}

// IsPublic reports whether the symbol carries FlagPublic.
func (s *Symbol) IsPublic() bool {
	return s.Flags&FlagPublic != 0
}

// QualifiedName renders the symbol as `org/name:symbol`.
func (s *Symbol) QualifiedName() string {
	if s.Pkg.IsZero() {
		return s.Name
	}
	return s.Pkg.Key() + ":" + s.Name
}

// String implements fmt.Stringer.
func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.QualifiedName())
}

// Scope is an insertion-ordered name table.
type Scope struct {
	Owner   *Symbol
	entries map[string]*Symbol
	order   []string
}

// NewScope creates an empty scope owned by owner.
func NewScope(owner *Symbol) *Scope {
	return &Scope{Owner: owner, entries: make(map[string]*Symbol)}
}

// Define adds sym to the scope. It fails if the name is already defined.
func (s *Scope) Define(sym *Symbol) error {
	if _, exists := s.entries[sym.Name]; exists {
		return fmt.Errorf("symbol %q is already defined", sym.Name)
	}
	s.entries[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return nil
}

// MustDefine is like Define but panics on a duplicate name.
func (s *Scope) MustDefine(sym *Symbol) {
	if err := s.Define(sym); err != nil {
		panic(err)
	}
}

// Lookup finds a symbol by name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	if s == nil {
		return nil, false
	}
	sym, ok := s.entries[name]
	return sym, ok
}

// Has reports whether name is defined.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Symbols returns every symbol in definition order.
func (s *Scope) Symbols() []*Symbol {
	if s == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name])
	}
	return out
}

// Len returns the number of symbols in the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
