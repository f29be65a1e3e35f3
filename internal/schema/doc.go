// Package schema defines the HCL block structure of unit source files and
// package manifests, and decodes the declarations they share.
package schema
