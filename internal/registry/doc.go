// Package registry holds the packages a unit may import.
//
// Each package is a resolved package symbol whose scope lists the types,
// annotations and functions the package exports. Packages are described by
// HCL manifests; the lambda runtime-support package ships embedded in the
// binary. Before a pass runs, ValidateRuntime checks that the runtime package
// actually exports everything the pass matches on or calls, so that a broken
// manifest fails fast instead of surfacing as an internal error mid-pass.
package registry
