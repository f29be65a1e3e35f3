// internal/pkgid/id.go
package pkgid

import "strings"

// ID is the structured representation of a package identity.
type ID struct {
	Org     string
	Name    string
	Version string
}

// New creates an ID from its parts.
func New(org, name, version string) ID {
	return ID{Org: org, Name: name, Version: version}
}

// Key returns the version-less `org/name` form, suitable as a map key.
func (id ID) Key() string {
	return id.Org + "/" + id.Name
}

// String serializes the ID into its canonical representation.
func (id ID) String() string {
	if id.Org == "" && id.Name == "" {
		return ""
	}
	if id.Version == "" {
		return id.Key()
	}
	return id.Key() + ":" + id.Version
}

// NameComps splits the package name into its dot-separated components.
func (id ID) NameComps() []string {
	if id.Name == "" {
		return nil
	}
	return strings.Split(id.Name, ".")
}

// Matches reports whether the ID belongs to the given organization and name.
// Comparison is exact; no case folding is applied.
func (id ID) Matches(org, name string) bool {
	return id.Org == org && id.Name == name
}

// Equal checks for equality including the version.
func (id ID) Equal(other ID) bool {
	return id == other
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ID{}
}
