// Package hclunit loads compilation units from HCL source files and renders
// functions back to HCL.
//
// A unit file starts with a `unit "org/name"` block and declares imports,
// types and functions. Files that name the same unit are merged. Names are
// resolved against the unit itself and against the packages of a
// registry.Registry.
package hclunit
