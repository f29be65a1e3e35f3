// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
)

// Synthesizer builds entry point functions that call into one resolved
// runtime package import.
type Synthesizer struct {
	id      Identity
	runtime *ast.Import
}

// NewSynthesizer binds a synthesizer to the runtime import. The import must
// be resolved: its symbol's scope is where the operations are looked up.
func NewSynthesizer(id Identity, runtime *ast.Import) (*Synthesizer, error) {
	if runtime == nil || runtime.Symbol == nil || runtime.Symbol.Scope == nil {
		return nil, fmt.Errorf("%w: %s", ErrRuntimeImportMissing, id.Package())
	}
	return &Synthesizer{id: id, runtime: runtime}, nil
}

// Build returns a detached entry point for unit whose body registers each
// handler, in order, and then calls the process operation. The unit is not
// modified; pass the result to Commit. With no handlers there is no entry
// point and Build returns nil.
func (s *Synthesizer) Build(unit *ast.Unit, handlers []*ast.Function) (*ast.Function, error) {
	if len(handlers) == 0 {
		return nil, nil
	}
	b := newEntryPointBuilder(unit, s.id.EntryPoint)

	for _, h := range handlers {
		if h.Symbol == nil {
			return nil, fmt.Errorf("handler %q has no resolved symbol", h.Name)
		}
		call, err := s.invocation(s.id.RegisterOp, []ast.Expression{
			ast.NewStringLiteral(h.Name, b.pos),
			ast.NewVarRef(h.Symbol, b.pos),
		}, b.pos)
		if err != nil {
			return nil, err
		}
		b.addCall(call)
	}

	call, err := s.invocation(s.id.ProcessOp, nil, b.pos)
	if err != nil {
		return nil, err
	}
	b.addCall(call)

	return b.fn, nil
}

// invocation resolves op in the runtime scope and builds a call to it. The
// calls are used as statements, so their type is nil.
func (s *Synthesizer) invocation(op string, args []ast.Expression, pos hcl.Range) (*ast.Invocation, error) {
	sym, ok := s.runtime.Symbol.Scope.Lookup(op)
	if !ok || sym.Kind != ast.SymbolFunction {
		return nil, fmt.Errorf("%w: %s does not export function %q", ErrRuntimeOperationMissing, s.runtime.Symbol.Pkg, op)
	}
	if args == nil {
		args = []ast.Expression{}
	}
	return &ast.Invocation{
		PkgAlias: s.runtime.Alias,
		Name:     op,
		Symbol:   sym,
		Args:     args,
		Type:     ast.NilType,
		Range:    pos,
	}, nil
}

// entryPointBuilder accumulates the body of a function that is not yet part of any unit.
type entryPointBuilder struct {
	fn  *ast.Function
	pos hcl.Range
}

func newEntryPointBuilder(unit *ast.Unit, name string) *entryPointBuilder {
	pos := unit.Range
	return &entryPointBuilder{
		pos: pos,
		fn: &ast.Function{
			Name:   name,
			Flags:  ast.FlagPublic,
			Body:   ast.NewBlock(pos),
			Symbol: ast.NewFunctionSymbol(name, unit.ID, ast.FlagPublic, &ast.Signature{Return: ast.NilType}),
			Range:  pos,
		},
	}
}

func (b *entryPointBuilder) addCall(call *ast.Invocation) {
	b.fn.Body.Add(&ast.ExpressionStmt{Expr: call, Range: b.pos})
}

// Commit appends a built entry point to unit and defines it in the unit
// scope. A nil fn is a no-op. On error the unit is unchanged.
func Commit(unit *ast.Unit, fn *ast.Function) error {
	if fn == nil {
		return nil
	}
	if unit.Scope().Has(fn.Name) {
		return fmt.Errorf("%w: %q", ErrEntryPointExists, fn.Name)
	}
	return unit.AddFunction(fn)
}
