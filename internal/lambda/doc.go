// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package lambda implements the handler annotation pass.
//
// The pass runs once per compilation unit, after name and type resolution:
//
//  1. Collect walks the unit's functions in declaration order. Functions that
//     carry the handler annotation (awslambda:Function) are checked against
//     the handler contract
//
//     public function (awslambda:Context, json) returns json|error
//
//     Valid ones become handlers; invalid ones produce one error diagnostic
//     each and are left out.
//
//  2. If there is at least one handler, a Synthesizer builds a detached entry
//     point function whose body registers every handler with the runtime
//     dispatcher, by name and function value, and then starts processing.
//
//  3. Commit appends the finished entry point to the unit. This is the only
//     mutation the pass performs.
//
// The runtime-support package is handed to the Synthesizer explicitly, as the
// exported scope of the resolved import; nothing is looked up globally.
package lambda
