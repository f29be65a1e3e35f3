// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines statements and expressions. Only the forms the passes in
// this repository read or produce are modelled.
package ast

import (
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Node is implemented by every tree node that has a source range.
type Node interface {
	NodeRange() hcl.Range
}

// Statement is a node that may appear in a Block.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a node that produces a value of a resolved type.
type Expression interface {
	Node
	exprNode()
	ResolvedType() *Type
}

// Block is an ordered list of statements.
type Block struct {
	Stmts []Statement
	Range hcl.Range
}

// NewBlock creates an empty block at rng.
func NewBlock(rng hcl.Range) *Block {
	return &Block{Range: rng}
}

// Add appends a statement to the block.
func (b *Block) Add(stmt Statement) {
	b.Stmts = append(b.Stmts, stmt)
}

// NodeRange implements Node.
func (b *Block) NodeRange() hcl.Range { return b.Range }

// ExpressionStmt evaluates an expression and discards its value.
type ExpressionStmt struct {
	Expr  Expression
	Range hcl.Range
}

func (*ExpressionStmt) stmtNode() {}

// NodeRange implements Node.
func (s *ExpressionStmt) NodeRange() hcl.Range { return s.Range }

// Invocation calls a function, optionally qualified by an import alias.
type Invocation struct {
	PkgAlias string
	Name     string
	Symbol   *Symbol
	Args     []Expression
	Type     *Type
	Range    hcl.Range
}

func (*Invocation) exprNode() {}

// NodeRange implements Node.
func (e *Invocation) NodeRange() hcl.Range { return e.Range }

// ResolvedType implements Expression.
func (e *Invocation) ResolvedType() *Type { return e.Type }

// String renders the call as written in source.
func (e *Invocation) String() string {
	var sb strings.Builder
	if e.PkgAlias != "" {
		sb.WriteString(e.PkgAlias)
		sb.WriteByte(':')
	}
	sb.WriteString(e.Name)
	sb.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ExprString(arg))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Literal is a constant value.
type Literal struct {
	Value cty.Value
	Type  *Type
	Range hcl.Range
}

func (*Literal) exprNode() {}

// NodeRange implements Node.
func (e *Literal) NodeRange() hcl.Range { return e.Range }

// ResolvedType implements Expression.
func (e *Literal) ResolvedType() *Type { return e.Type }

// NewStringLiteral creates a string literal at rng.
func NewStringLiteral(value string, rng hcl.Range) *Literal {
	return &Literal{Value: cty.StringVal(value), Type: StringType, Range: rng}
}

// VarRef references a resolved symbol by name.
type VarRef struct {
	Name   string
	Symbol *Symbol
	Type   *Type
	Range  hcl.Range
}

func (*VarRef) exprNode() {}

// NodeRange implements Node.
func (e *VarRef) NodeRange() hcl.Range { return e.Range }

// ResolvedType implements Expression.
func (e *VarRef) ResolvedType() *Type { return e.Type }

// NewVarRef creates a reference to sym typed as the symbol's own type.
func NewVarRef(sym *Symbol, rng hcl.Range) *VarRef {
	return &VarRef{Name: sym.Name, Symbol: sym, Type: sym.Type, Range: rng}
}

// ExprString renders an expression as written in source.
func ExprString(e Expression) string {
	switch v := e.(type) {
	case *Invocation:
		return v.String()
	case *VarRef:
		return v.Name
	case *Literal:
		if v.Value.Type() == cty.String && v.Value.IsKnown() && !v.Value.IsNull() {
			return strconv.Quote(v.Value.AsString())
		}
		return v.Value.GoString()
	}
	return "<?>"
}
