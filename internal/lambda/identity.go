// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
)

// DefaultEntryPointID seeds the name of the synthesized entry point. It is a
// fixed value so that rebuilding a unit yields the same symbol.
var DefaultEntryPointID = uuid.MustParse("d47ff0e4-cb4f-40a7-acde-5daf8f50043c")

// EntryPointName derives a function name that cannot clash with user code
// from id, e.g. `__d47ff0e4_cb4f_40a7_acde_5daf8f50043c`.
func EntryPointName(id uuid.UUID) string {
	return "__" + strings.ReplaceAll(id.String(), "-", "_")
}

// Identity names everything the pass matches on or emits.
type Identity struct {
	// Org and Module identify the runtime-support package.
	Org    string
	Module string
	// Annotation marks handler functions. It is exported by the runtime package.
	Annotation string
	// ContextType is the first handler parameter's type, exported by the runtime package.
	ContextType string
	// RegisterOp and ProcessOp are the runtime operations the entry point calls.
	RegisterOp string
	ProcessOp  string
	// EntryPoint is the name of the synthesized function.
	EntryPoint string
}

// DefaultIdentity returns the identity of the ballerinax/awslambda runtime.
func DefaultIdentity() Identity {
	return Identity{
		Org:         "ballerinax",
		Module:      "awslambda",
		Annotation:  "Function",
		ContextType: "Context",
		RegisterOp:  "register",
		ProcessOp:   "process",
		EntryPoint:  EntryPointName(DefaultEntryPointID),
	}
}

// Package returns the runtime package identity without a version.
func (id Identity) Package() pkgid.ID {
	return pkgid.New(id.Org, id.Module, "")
}

// Contract renders the handler signature users must follow.
func (id Identity) Contract() string {
	return fmt.Sprintf("public function (%s:%s, json) returns json|error", id.Module, id.ContextType)
}

// Validate checks that every field is set.
func (id Identity) Validate() error {
	fields := []struct{ name, value string }{
		{"org", id.Org},
		{"module", id.Module},
		{"annotation", id.Annotation},
		{"context type", id.ContextType},
		{"register operation", id.RegisterOp},
		{"process operation", id.ProcessOp},
		{"entry point", id.EntryPoint},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("lambda identity: %s must not be empty", f.name)
		}
	}
	return nil
}
