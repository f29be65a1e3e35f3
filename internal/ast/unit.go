// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the compilation unit and its imports.
package ast

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
)

// Import is a resolved import declaration. Symbol is the imported package's
// symbol; its Scope holds the names the package exports.
type Import struct {
	Org       string
	NameComps []string
	Version   string
	Alias     string
	Symbol    *Symbol
	Range     hcl.Range
}

// Matches reports whether the import names exactly org/name, where name is a
// single name component.
func (i *Import) Matches(org, name string) bool {
	return i.Org == org && len(i.NameComps) == 1 && i.NameComps[0] == name
}

// PackageName returns the dotted package name.
func (i *Import) PackageName() string {
	return strings.Join(i.NameComps, ".")
}

// Unit is a compilation unit: the package being compiled.
type Unit struct {
	ID        pkgid.ID
	Symbol    *Symbol
	Imports   []*Import
	Functions []*Function
	// Range is the root source position of the unit.
	Range hcl.Range
	// Files lists the source files the unit was assembled from.
	Files []string
}

// NewUnit creates an empty unit with its own package symbol.
func NewUnit(id pkgid.ID, rng hcl.Range) *Unit {
	return &Unit{ID: id, Symbol: NewPackageSymbol(id), Range: rng}
}

// Scope returns the unit's top-level scope.
func (u *Unit) Scope() *Scope {
	return u.Symbol.Scope
}

// AddFunction appends fn to the declaration list and defines its symbol in the
// unit scope. Nothing is changed when the name is already taken.
func (u *Unit) AddFunction(fn *Function) error {
	if fn.Symbol == nil {
		return fmt.Errorf("function %q has no symbol", fn.Name)
	}
	if err := u.Scope().Define(fn.Symbol); err != nil {
		return fmt.Errorf("unit %s: %w", u.ID, err)
	}
	u.Functions = append(u.Functions, fn)
	return nil
}

// FindImport returns the import of org/name, or nil.
func (u *Unit) FindImport(org, name string) *Import {
	for _, imp := range u.Imports {
		if imp.Matches(org, name) {
			return imp
		}
	}
	return nil
}

// ImportByAlias returns the import bound to alias, or nil.
func (u *Unit) ImportByAlias(alias string) *Import {
	for _, imp := range u.Imports {
		if imp.Alias == alias {
			return imp
		}
	}
	return nil
}

// Function returns the declaration named name, or nil.
func (u *Unit) Function(name string) *Function {
	for _, fn := range u.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
