// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeImportMissing means a unit with handlers does not import the
	// runtime package. The annotation cannot be written without that import,
	// so this indicates an inconsistent tree.
	ErrRuntimeImportMissing = errors.New("runtime package import not found")
	// ErrRuntimeOperationMissing means the runtime package does not export an
	// operation the entry point calls.
	ErrRuntimeOperationMissing = errors.New("runtime operation not found")
	// ErrEntryPointExists means the unit already declares the entry point name.
	ErrEntryPointExists = errors.New("entry point already declared")
)

// InternalError reports a pass failure caused by an inconsistency between the
// tree, the pass and the runtime package rather than by user code.
type InternalError struct {
	Unit   string
	Op     string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	msg := fmt.Sprintf("lambda: internal error in unit %s during %s: %v", e.Unit, e.Op, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the sentinel cause.
func (e *InternalError) Unwrap() error {
	return e.Err
}
