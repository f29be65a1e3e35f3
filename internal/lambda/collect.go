// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
)

// InvalidSignatureSummary is the summary of every handler contract diagnostic.
const InvalidSignatureSummary = "Invalid function signature for an AWS lambda function"

// Collect returns the unit's valid handler functions in declaration order,
// plus one error diagnostic for every annotated function that breaks the
// handler contract. Functions without the annotation are ignored. The unit is
// not modified.
func Collect(unit *ast.Unit, id Identity) ([]*ast.Function, hcl.Diagnostics) {
	var handlers []*ast.Function
	var diags hcl.Diagnostics

	for _, fn := range unit.Functions {
		if !HasHandlerAnnotation(fn, id) {
			continue
		}
		if v := CheckSignature(fn, id); v != ViolationNone {
			diags = append(diags, invalidSignature(fn, id, v))
			continue
		}
		handlers = append(handlers, fn)
	}

	return handlers, diags
}

func invalidSignature(fn *ast.Function, id Identity, v Violation) *hcl.Diagnostic {
	subject := fn.Range
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  InvalidSignatureSummary,
		Detail: fmt.Sprintf("The function %q (%s) cannot be an AWS lambda function: %s. It should be '%s'.",
			fn.Name, fn.String(), v.Reason(), id.Contract()),
		Subject: &subject,
		Extra:   v,
	}
}

// ViolationOf returns the contract violation carried by a diagnostic produced by Collect.
func ViolationOf(diag *hcl.Diagnostic) (Violation, bool) {
	v, ok := diag.Extra.(Violation)
	return v, ok
}
