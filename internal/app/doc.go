// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI.
//
// One run loads every unit under the input paths, runs the lambda pass over
// each unit, verifies the synthesized entry points, writes the optional
// artifacts (generated HCL, trace file, metrics) and renders a report.
package app
