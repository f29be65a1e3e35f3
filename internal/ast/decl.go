// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines function declarations, their parameters and the
// annotations attached to them.
package ast

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Param is a single function parameter.
type Param struct {
	Name     string
	TypeNode *TypeNode
	Symbol   *Symbol
	Range    hcl.Range
}

// String renders the parameter as `type name`.
func (p *Param) String() string {
	return p.TypeNode.String() + " " + p.Name
}

// AnnotationAttachment is an annotation applied to a declaration. Its identity
// is that of the resolved Symbol; PkgAlias and Name are as written in source.
type AnnotationAttachment struct {
	PkgAlias string
	Name     string
	Symbol   *Symbol
	Range    hcl.Range
}

// String renders the attachment as `@alias:Name`.
func (a *AnnotationAttachment) String() string {
	if a.PkgAlias == "" {
		return "@" + a.Name
	}
	return "@" + a.PkgAlias + ":" + a.Name
}

// Function is a top-level function declaration.
//
// ReturnTypeNode is nil when the function returns nil. Body is nil for
// external declarations such as the exports of a package manifest.
type Function struct {
	Name              string
	Flags             Flag
	RequiredParams    []*Param
	DefaultableParams []*Param
	RestParam         *Param
	ReturnTypeNode    *TypeNode
	Annotations       []*AnnotationAttachment
	Body              *Block
	Symbol            *Symbol
	Range             hcl.Range
}

// Params returns every parameter in declaration order: required,
// defaultable, then rest.
func (f *Function) Params() []*Param {
	params := make([]*Param, 0, len(f.RequiredParams)+len(f.DefaultableParams)+1)
	params = append(params, f.RequiredParams...)
	params = append(params, f.DefaultableParams...)
	if f.RestParam != nil {
		params = append(params, f.RestParam)
	}
	return params
}

// IsPublic reports whether the function carries FlagPublic.
func (f *Function) IsPublic() bool {
	return f.Flags&FlagPublic != 0
}

// ReturnType returns the resolved return type, NilType when none is declared.
func (f *Function) ReturnType() *Type {
	if f.ReturnTypeNode == nil {
		return NilType
	}
	return f.ReturnTypeNode.Type
}

// Signature derives the invokable signature from the declared parameters.
// Defaultable parameters are part of the positional list.
func (f *Function) Signature() *Signature {
	sig := &Signature{Return: f.ReturnType()}
	for _, p := range f.RequiredParams {
		sig.Params = append(sig.Params, p.TypeNode.Type)
	}
	for _, p := range f.DefaultableParams {
		sig.Params = append(sig.Params, p.TypeNode.Type)
	}
	if f.RestParam != nil {
		sig.Rest = f.RestParam.TypeNode.Type
	}
	return sig
}

// String renders the declaration header, e.g.
// `public function echo(awslambda:Context ctx, json input) returns json|error`.
func (f *Function) String() string {
	var sb strings.Builder
	if f.IsPublic() {
		sb.WriteString("public ")
	}
	sb.WriteString("function ")
	sb.WriteString(f.Name)
	sb.WriteByte('(')

	var params []string
	for _, p := range f.RequiredParams {
		params = append(params, p.String())
	}
	for _, p := range f.DefaultableParams {
		params = append(params, p.String()+" = ...")
	}
	if f.RestParam != nil {
		params = append(params, f.RestParam.TypeNode.String()+"... "+f.RestParam.Name)
	}
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')

	if f.ReturnTypeNode != nil {
		sb.WriteString(" returns ")
		sb.WriteString(f.ReturnTypeNode.String())
	}
	return sb.String()
}
