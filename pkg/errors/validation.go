package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds identifiers, namespaces and versions read from user input.
const maxNameLength = 256

// identifierRegex matches a single type or member identifier. Generic arity
// markers (List`1) are accepted.
var identifierRegex = regexp.MustCompile("^[A-Za-z_][A-Za-z0-9_]*(`[0-9]+)?$")

// ValidateIdentifier validates a type or member name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Letters, digits and underscores only, not starting with a digit
//   - An optional generic arity suffix (`1, `2, ...)
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxNameLength)
	}
	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", name)
	}
	return nil
}

// ValidateNamespace validates a dotted namespace such as "AnimalLibrary" or
// "System.Collections.Generic". The empty namespace is valid and selects
// types declared outside any namespace.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return nil
	}
	if len(ns) > maxNameLength {
		return New(ErrCodeInvalidInput, "namespace too long (max %d characters)", maxNameLength)
	}
	for _, r := range ns {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "namespace contains invalid control characters")
		}
	}
	for _, part := range strings.Split(ns, ".") {
		if part == "" {
			return New(ErrCodeInvalidInput, "namespace has an empty segment: %q", ns)
		}
		if err := ValidateIdentifier(part); err != nil {
			return New(ErrCodeInvalidInput, "invalid namespace segment %q in %q", part, ns)
		}
	}
	return nil
}

// versionRegex matches assembly versions with one to four numeric components.
var versionRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,3}$`)

// ValidateVersion validates an assembly version ("1", "1.0", ..., "1.0.0.0").
// The empty version is valid; callers substitute the default.
func ValidateVersion(v string) error {
	if v == "" {
		return nil
	}
	if !versionRegex.MatchString(v) {
		return New(ErrCodeInvalidInput, "invalid assembly version: %q (expected major[.minor[.build[.revision]]])", v)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
