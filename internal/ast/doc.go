// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ast provides the in-memory representation of a resolved compilation
// unit: its imports, function declarations, attached annotations, statements
// and the symbols and types every node has already been resolved to.
//
// # Core Concepts
//
//   - Unit: The root of the tree. It owns the top-level declarations and the
//     package scope they are defined in, and it records a root source range.
//
//   - Function: A top-level declaration with required, defaultable and rest
//     parameters, a return type node, annotation attachments and a body.
//
//   - TypeNode / Type: The syntax side and the resolved side of a type. Both
//     are closed variants: a TypeNode is one of builtin, user-defined or union,
//     and a Type carries a Tag that decides which of its payload fields are set.
//
//   - Symbol / Scope: Resolved names. Package symbols own the scope of names
//     they export; function symbols carry their invokable type.
//
// Why a separate tree package?
//
// Front ends (the HCL loader in this repository) produce Units, and passes
// (handler collection, entry-point synthesis, type checking) consume and extend
// them. Keeping the tree free of any front-end or pass logic lets each side be
// tested against hand-built trees.
//
// Source positions reuse hcl.Range so diagnostics produced anywhere in the
// pipeline can be rendered by the standard HCL diagnostic writers.
package ast
