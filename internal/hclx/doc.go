// Package hclx collects small helpers over the HCL API that are shared by the
// unit loader and the package manifest loader: unique-block lookup, traversal
// keys, qualified-name splitting and type-expression decoding.
package hclx
