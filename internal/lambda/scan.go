// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import "github.com/specialistvlad/lambdagen/internal/ast"

// HasHandlerAnnotation reports whether fn carries the handler annotation.
// An attachment matches on its resolved symbol's (org, module, name); the
// alias it was written with is irrelevant. Unresolved attachments never match.
func HasHandlerAnnotation(fn *ast.Function, id Identity) bool {
	for _, att := range fn.Annotations {
		if isHandlerAnnotation(att, id) {
			return true
		}
	}
	return false
}

func isHandlerAnnotation(att *ast.AnnotationAttachment, id Identity) bool {
	sym := att.Symbol
	if sym == nil || sym.Kind != ast.SymbolAnnotation {
		return false
	}
	return sym.Pkg.Matches(id.Org, id.Module) && sym.Name == id.Annotation
}
