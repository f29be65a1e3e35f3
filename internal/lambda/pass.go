// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package lambda

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"go.uber.org/zap"
)

// Result is the outcome of running the pass over one unit.
type Result struct {
	Unit     *ast.Unit
	Handlers []*ast.Function
	// EntryPoint is nil when the unit has no valid handlers.
	EntryPoint  *ast.Function
	Diagnostics hcl.Diagnostics
}

// Pass runs handler collection and entry point synthesis.
type Pass struct {
	id Identity
}

// New creates a pass for the given identity.
func New(id Identity) (*Pass, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Pass{id: id}, nil
}

// Identity returns the identity the pass matches on.
func (p *Pass) Identity() Identity {
	return p.id
}

// Process runs the pass over unit. Contract violations are returned as
// diagnostics in the result. An error is returned only for internal
// inconsistencies, in which case the unit has not been modified.
func (p *Pass) Process(ctx context.Context, unit *ast.Unit) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With(zap.Stringer("unit", unit.ID))

	handlers, diags := Collect(unit, p.id)
	res := &Result{Unit: unit, Handlers: handlers, Diagnostics: diags}
	for _, h := range handlers {
		logger.Debug("Lambda handler found.", zap.String("function", h.Name))
	}
	if len(diags) > 0 {
		logger.Debug("Annotated functions rejected.", zap.Int("count", len(diags)))
	}

	if len(handlers) == 0 {
		logger.Debug("No lambda handlers, skipping entry point synthesis.")
		return res, nil
	}

	imp := unit.FindImport(p.id.Org, p.id.Module)
	synth, err := NewSynthesizer(p.id, imp)
	if err != nil {
		return res, p.internal(unit, "locate runtime import", err)
	}

	fn, err := synth.Build(unit, handlers)
	if err != nil {
		return res, p.internal(unit, "build entry point", err)
	}

	if err := Commit(unit, fn); err != nil {
		return res, p.internal(unit, "commit entry point", err)
	}

	res.EntryPoint = fn
	logger.Info("Lambda entry point synthesized.",
		zap.String("entry_point", fn.Name),
		zap.Int("handlers", len(handlers)),
	)
	return res, nil
}

func (p *Pass) internal(unit *ast.Unit, op string, err error) error {
	ie := &InternalError{Unit: unit.ID.String(), Op: op, Err: err}
	// Keep the sentinel reachable through Unwrap and the full text in Detail.
	for _, sentinel := range []error{ErrRuntimeImportMissing, ErrRuntimeOperationMissing, ErrEntryPointExists} {
		if errors.Is(err, sentinel) {
			ie.Err = sentinel
			ie.Detail = err.Error()
			break
		}
	}
	return ie
}
