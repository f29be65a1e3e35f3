// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import "github.com/specialistvlad/lambdagen/internal/ast"

// Violation is the first handler contract check a function fails.
type Violation int

const (
	ViolationNone Violation = iota
	// ViolationArity: not exactly two required parameters, or defaultable or rest parameters present.
	ViolationArity
	// ViolationContextParam: the first parameter is not the runtime's Context type.
	ViolationContextParam
	// ViolationPayloadParam: the second parameter is not json.
	ViolationPayloadParam
	// ViolationReturnNotUnion: the return type is missing or is not a union.
	ViolationReturnNotUnion
	// ViolationReturnMemberCount: the return union does not have exactly two members.
	ViolationReturnMemberCount
	// ViolationReturnMemberKinds: a return union member is neither json nor error.
	ViolationReturnMemberKinds
)

var violationNames = [...]string{
	ViolationNone:              "none",
	ViolationArity:             "arity",
	ViolationContextParam:      "context_param",
	ViolationPayloadParam:      "payload_param",
	ViolationReturnNotUnion:    "return_not_union",
	ViolationReturnMemberCount: "return_member_count",
	ViolationReturnMemberKinds: "return_member_kinds",
}

// String returns a stable snake_case name, used as a metrics label.
func (v Violation) String() string {
	if v >= 0 && int(v) < len(violationNames) {
		return violationNames[v]
	}
	return "unknown"
}

// Reason describes the violation in a sentence fragment.
func (v Violation) Reason() string {
	switch v {
	case ViolationNone:
		return "the signature is valid"
	case ViolationArity:
		return "a handler takes exactly two required parameters and no defaultable or rest parameters"
	case ViolationContextParam:
		return "the first parameter must be the runtime Context"
	case ViolationPayloadParam:
		return "the second parameter must be json"
	case ViolationReturnNotUnion:
		return "the return type must be the union json|error"
	case ViolationReturnMemberCount:
		return "the return union must have exactly two members"
	case ViolationReturnMemberKinds:
		return "the return union may only contain json and error"
	}
	return "unknown violation"
}

// IsValidHandlerSignature reports whether fn satisfies the handler contract.
func IsValidHandlerSignature(fn *ast.Function, id Identity) bool {
	return CheckSignature(fn, id) == ViolationNone
}

// CheckSignature runs the handler contract checks in order and returns the
// first one that fails, or ViolationNone. It has no side effects.
func CheckSignature(fn *ast.Function, id Identity) Violation {
	if len(fn.RequiredParams) != 2 || len(fn.DefaultableParams) > 0 || fn.RestParam != nil {
		return ViolationArity
	}
	if !isContextParam(fn.RequiredParams[0], id) {
		return ViolationContextParam
	}
	if !isPayloadParam(fn.RequiredParams[1]) {
		return ViolationPayloadParam
	}
	return checkReturn(fn.ReturnTypeNode)
}

func isContextParam(p *ast.Param, id Identity) bool {
	node := p.TypeNode
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.TypeNodeUserDefined:
		t := node.Type
		if t == nil || !t.Tag.IsUserDefined() || t.Symbol == nil {
			return false
		}
		return t.Symbol.Name == id.ContextType && t.Symbol.Pkg.Matches(id.Org, id.Module)
	case ast.TypeNodeBuiltin, ast.TypeNodeUnion:
		return false
	}
	return false
}

// isPayloadParam checks the resolved type, so a named alias of json passes too.
func isPayloadParam(p *ast.Param) bool {
	return p.TypeNode != nil && p.TypeNode.Type != nil && p.TypeNode.Type.Tag == ast.TagJSON
}

func checkReturn(node *ast.TypeNode) Violation {
	if node == nil {
		return ViolationReturnNotUnion
	}
	switch node.Kind {
	case ast.TypeNodeBuiltin, ast.TypeNodeUserDefined:
		return ViolationReturnNotUnion
	case ast.TypeNodeUnion:
		return checkUnionMembers(node.Members)
	}
	return ViolationReturnNotUnion
}

// checkUnionMembers counts member nodes but compares member kinds as a set,
// so json|json passes both checks.
func checkUnionMembers(members []*ast.TypeNode) Violation {
	if len(members) != 2 {
		return ViolationReturnMemberCount
	}

	tags := make(map[ast.TypeTag]struct{}, 2)
	for _, m := range members {
		if m.Type == nil {
			tags[ast.TagInvalid] = struct{}{}
			continue
		}
		tags[m.Type.Tag] = struct{}{}
	}
	delete(tags, ast.TagJSON)
	delete(tags, ast.TagError)
	if len(tags) != 0 {
		return ViolationReturnMemberKinds
	}
	return ViolationNone
}
