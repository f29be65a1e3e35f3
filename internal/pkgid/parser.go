// internal/pkgid/parser.go
package pkgid

import (
	"fmt"
	"regexp"
	"strings"
)

// componentRegex matches a single organization or name component.
var componentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// versionRegex matches a dotted numeric version with an optional suffix, e.g. `0.0.0` or `1.2.3-alpha`.
var versionRegex = regexp.MustCompile(`^\d+(\.\d+){0,2}(-[a-zA-Z0-9.]+)?$`)

// Parse creates a new ID by parsing its canonical string representation.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("package identity cannot be empty")
	}

	rest, version, hasVersion := strings.Cut(raw, ":")
	if hasVersion && !versionRegex.MatchString(version) {
		return ID{}, fmt.Errorf("invalid package version: %q", version)
	}

	org, name, found := strings.Cut(rest, "/")
	if !found {
		return ID{}, fmt.Errorf("package identity %q must have the form org/name", raw)
	}
	if !componentRegex.MatchString(org) {
		return ID{}, fmt.Errorf("invalid organization name: %q", org)
	}
	if name == "" {
		return ID{}, fmt.Errorf("package identity %q has an empty name", raw)
	}
	for _, comp := range strings.Split(name, ".") {
		if !componentRegex.MatchString(comp) {
			return ID{}, fmt.Errorf("invalid package name component: %q", comp)
		}
	}

	return ID{Org: org, Name: name, Version: version}, nil
}

// MustParse is like Parse but panics on error. It is intended for constants.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidVersion reports whether v is a well-formed version. The empty string is valid.
func ValidVersion(v string) bool {
	return v == "" || versionRegex.MatchString(v)
}
