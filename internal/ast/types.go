// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines resolved types and the type nodes that reference them.
package ast

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// TypeTag is the kind of a resolved type.
type TypeTag int

const (
	TagInvalid TypeTag = iota
	TagNil
	TagBoolean
	TagInt
	TagFloat
	TagString
	TagJSON
	TagError
	TagAny
	TagFunction
	TagObject
	TagRecord
	TagUnion
)

var tagNames = map[TypeTag]string{
	TagInvalid:  "invalid",
	TagNil:      "()",
	TagBoolean:  "boolean",
	TagInt:      "int",
	TagFloat:    "float",
	TagString:   "string",
	TagJSON:     "json",
	TagError:    "error",
	TagAny:      "any",
	TagFunction: "function",
	TagObject:   "object",
	TagRecord:   "record",
	TagUnion:    "union",
}

// String returns the keyword of the tag.
func (t TypeTag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "invalid"
}

// IsUserDefined reports whether types with this tag are declared by users
// rather than built into the language.
func (t TypeTag) IsUserDefined() bool {
	return t == TagObject || t == TagRecord
}

// Signature is the invokable shape of a function type.
type Signature struct {
	Params []*Type
	Rest   *Type
	Return *Type
}

// Type is a resolved type. Tag decides which payload field is meaningful:
// Symbol for user-defined tags, Members for TagUnion, Signature (optional)
// for TagFunction.
type Type struct {
	Tag       TypeTag
	Symbol    *Symbol
	Members   []*Type
	Signature *Signature
}

// Shared builtin types. They must not be mutated.
var (
	NilType     = &Type{Tag: TagNil}
	BooleanType = &Type{Tag: TagBoolean}
	IntType     = &Type{Tag: TagInt}
	FloatType   = &Type{Tag: TagFloat}
	StringType  = &Type{Tag: TagString}
	JSONType    = &Type{Tag: TagJSON}
	ErrorType   = &Type{Tag: TagError}
	AnyType     = &Type{Tag: TagAny}
	// FunctionType is the type of any function value regardless of signature.
	FunctionType = &Type{Tag: TagFunction}
)

// builtinKeywords maps type keywords to the shared builtin types.
var builtinKeywords = map[string]*Type{
	"()":       NilType,
	"nil":      NilType,
	"boolean":  BooleanType,
	"int":      IntType,
	"float":    FloatType,
	"string":   StringType,
	"json":     JSONType,
	"error":    ErrorType,
	"any":      AnyType,
	"function": FunctionType,
}

// BuiltinType returns the builtin type for a keyword.
func BuiltinType(keyword string) (*Type, bool) {
	t, ok := builtinKeywords[keyword]
	return t, ok
}

// NewUnionType creates a union of the given member types.
func NewUnionType(members ...*Type) *Type {
	return &Type{Tag: TagUnion, Members: members}
}

// NewFunctionType creates a function type with a concrete signature.
func NewFunctionType(sig *Signature) *Type {
	return &Type{Tag: TagFunction, Signature: sig}
}

// String renders the type the way it would be written in source.
func (t *Type) String() string {
	if t == nil {
		return "()"
	}
	switch t.Tag {
	case TagObject, TagRecord:
		if t.Symbol == nil {
			return t.Tag.String()
		}
		return t.Symbol.QualifiedName()
	case TagUnion:
		parts := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			parts = append(parts, m.String())
		}
		return strings.Join(parts, "|")
	case TagFunction:
		if t.Signature == nil {
			return "function"
		}
		return "function " + t.Signature.String()
	default:
		return t.Tag.String()
	}
}

// String renders the signature as `(p1, p2, r...) returns t`.
func (s *Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if s.Rest != nil {
		if len(s.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.Rest.String())
		sb.WriteString("...")
	}
	sb.WriteByte(')')
	if s.Return != nil && s.Return.Tag != TagNil {
		sb.WriteString(" returns ")
		sb.WriteString(s.Return.String())
	}
	return sb.String()
}

// TypeNodeKind discriminates the TypeNode variants.
type TypeNodeKind int

const (
	// TypeNodeBuiltin references a builtin keyword such as `json`.
	TypeNodeBuiltin TypeNodeKind = iota
	// TypeNodeUserDefined references a named type, optionally through an import alias.
	TypeNodeUserDefined
	// TypeNodeUnion lists member type nodes, e.g. `union(json, error)`.
	TypeNodeUnion
)

// String returns a short name for the kind.
func (k TypeNodeKind) String() string {
	switch k {
	case TypeNodeBuiltin:
		return "builtin"
	case TypeNodeUserDefined:
		return "user-defined"
	case TypeNodeUnion:
		return "union"
	}
	return "unknown"
}

// TypeNode is a type reference as written in source, with its resolved Type.
// PkgAlias and Name are set for TypeNodeUserDefined; Members for TypeNodeUnion.
type TypeNode struct {
	Kind     TypeNodeKind
	Type     *Type
	PkgAlias string
	Name     string
	Members  []*TypeNode
	Range    hcl.Range
}

// NewBuiltinTypeNode creates a node referencing a builtin type.
func NewBuiltinTypeNode(t *Type, rng hcl.Range) *TypeNode {
	return &TypeNode{Kind: TypeNodeBuiltin, Type: t, Range: rng}
}

// NewUserDefinedTypeNode creates a node referencing a named type resolved to sym.
func NewUserDefinedTypeNode(alias string, sym *Symbol, rng hcl.Range) *TypeNode {
	return &TypeNode{
		Kind:     TypeNodeUserDefined,
		Type:     sym.Type,
		PkgAlias: alias,
		Name:     sym.Name,
		Range:    rng,
	}
}

// NewUnionTypeNode creates a union node; its Type is the union of the member types.
func NewUnionTypeNode(members []*TypeNode, rng hcl.Range) *TypeNode {
	types := make([]*Type, 0, len(members))
	for _, m := range members {
		types = append(types, m.Type)
	}
	return &TypeNode{Kind: TypeNodeUnion, Type: NewUnionType(types...), Members: members, Range: rng}
}

// String renders the node as written in source.
func (n *TypeNode) String() string {
	if n == nil {
		return "()"
	}
	switch n.Kind {
	case TypeNodeUserDefined:
		if n.PkgAlias != "" {
			return n.PkgAlias + ":" + n.Name
		}
		return n.Name
	case TypeNodeUnion:
		parts := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			parts = append(parts, m.String())
		}
		return strings.Join(parts, "|")
	default:
		return n.Type.String()
	}
}
