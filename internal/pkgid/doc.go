// internal/pkgid/doc.go

/*
Package pkgid provides a structured representation for package identities,
based on the canonical format `org/name[:version]`.

A package name may be dotted (e.g. `ballerina/lang.array`); each dot-separated
part is a name component. Two identities denote the same package when their
organization and full name match. The version is informational and is only
compared by Equal.
*/
package pkgid
