// SPDX-License-Identifier: MPL-2.0

package binder

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RoleCollector names the schema-introspecting component.
	RoleCollector Role = "collector"
	// RoleLoader names the data-seeding component.
	RoleLoader Role = "loader"
)

var (
	// ErrPluginLoad is the sentinel error wrapped by PluginLoadError.
	ErrPluginLoad = errors.New("plugin load failed")
	// ErrPluginShape is the sentinel error wrapped by PluginShapeError.
	ErrPluginShape = errors.New("plugin does not satisfy its contract")
)

type (
	// Role is the part a component plays in a plugin pair.
	Role string

	// PluginLoadError is returned when a component cannot be located, opened
	// or instantiated. Err holds the underlying cause, if any.
	PluginLoadError struct {
		Component string
		Path      string
		Reason    string
		Err       error
	}

	// PluginShapeError is returned when an instantiated component lacks
	// methods its role requires. Missing is sorted.
	PluginShapeError struct {
		Component string
		Role      Role
		Missing   []string
	}
)

// Error implements the error interface for PluginLoadError.
func (e *PluginLoadError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cannot load plugin component %q", e.Component)
	if e.Path != "" {
		fmt.Fprintf(&sb, " from %s", e.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns ErrPluginLoad and the cause, so both errors.Is(err,
// ErrPluginLoad) and errors.As on the cause work.
func (e *PluginLoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPluginLoad}
	}
	return []error{ErrPluginLoad, e.Err}
}

// Error implements the error interface for PluginShapeError.
func (e *PluginShapeError) Error() string {
	return fmt.Sprintf("plugin component %q is not a valid %s, missing methods: %s",
		e.Component, e.Role, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrPluginShape for errors.Is() compatibility.
func (e *PluginShapeError) Unwrap() error { return ErrPluginShape }
