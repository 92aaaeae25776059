// SPDX-License-Identifier: MPL-2.0

package datamodel

import (
	"errors"
	"fmt"
	"strings"
)

const (
	entitySpecSeparator = ","
	typeHintSeparator   = ":"
)

var (
	// ErrInvalidEntitySpec is the sentinel error wrapped by InvalidEntitySpecError.
	ErrInvalidEntitySpec = errors.New("invalid entity spec")
)

type (
	// EntitySpec is a requested entity: a name and an optional type hint.
	// An empty TypeHint means no hint was given.
	EntitySpec struct {
		Name     string
		TypeHint string
	}

	// InvalidEntitySpecError is returned when an entity spec has no name.
	// It wraps ErrInvalidEntitySpec for errors.Is() compatibility.
	InvalidEntitySpecError struct {
		Raw string
	}
)

// HasHint reports whether a type hint was supplied.
func (s EntitySpec) HasHint() bool { return s.TypeHint != "" }

// DataType returns the coerced declared type of the spec.
func (s EntitySpec) DataType() DataType { return ParseDataType(s.TypeHint) }

// TypeLabel returns the raw type label to record on a synthesized entity:
// the hint as written, or DefaultTypeLabel when absent.
func (s EntitySpec) TypeLabel() string {
	if !s.HasHint() {
		return DefaultTypeLabel
	}
	return s.TypeHint
}

// String renders the spec in its command-line form.
func (s EntitySpec) String() string {
	if !s.HasHint() {
		return s.Name
	}
	return s.Name + typeHintSeparator + s.TypeHint
}

// ParseEntitySpec parses "name" or "name:typeHint".
func ParseEntitySpec(raw string) (EntitySpec, error) {
	name, hint, _ := strings.Cut(raw, typeHintSeparator)
	name = strings.TrimSpace(name)
	if name == "" {
		return EntitySpec{}, &InvalidEntitySpecError{Raw: raw}
	}
	return EntitySpec{Name: name, TypeHint: strings.TrimSpace(hint)}, nil
}

// ParseEntitySpecs parses a comma-separated list of entity specs, keeping
// the given order.
func ParseEntitySpecs(raw string) ([]EntitySpec, error) {
	parts := strings.Split(raw, entitySpecSeparator)
	specs := make([]EntitySpec, 0, len(parts))
	for _, part := range parts {
		spec, err := ParseEntitySpec(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Error implements the error interface for InvalidEntitySpecError.
func (e *InvalidEntitySpecError) Error() string {
	return fmt.Sprintf("invalid entity spec %q: expected name or name:type", e.Raw)
}

// Unwrap returns ErrInvalidEntitySpec for errors.Is() compatibility.
func (e *InvalidEntitySpecError) Unwrap() error { return ErrInvalidEntitySpec }
