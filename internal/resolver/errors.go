// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDependency is the sentinel error wrapped by MissingDependencyError.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrAmbiguousDependency is the sentinel error wrapped by AmbiguousDependencyError.
	ErrAmbiguousDependency = errors.New("ambiguous dependency")
)

type (
	// MissingDependencyError is returned when no unit named Name exists under
	// SearchRoot. It wraps ErrMissingDependency for errors.Is() compatibility.
	MissingDependencyError struct {
		Name       string
		SearchRoot string
	}

	// AmbiguousDependencyError is returned in strict mode when more than one
	// unit named Name exists. Candidates are in walk order.
	AmbiguousDependencyError struct {
		Name       string
		Candidates []string
	}
)

// Error implements the error interface for MissingDependencyError.
func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %q not found under %s", e.Name, e.SearchRoot)
}

// Unwrap returns ErrMissingDependency for errors.Is() compatibility.
func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// Error implements the error interface for AmbiguousDependencyError.
func (e *AmbiguousDependencyError) Error() string {
	return fmt.Sprintf("dependency %q is ambiguous, found %d candidates:\n  - %s",
		e.Name, len(e.Candidates), strings.Join(e.Candidates, "\n  - "))
}

// Unwrap returns ErrAmbiguousDependency for errors.Is() compatibility.
func (e *AmbiguousDependencyError) Unwrap() error { return ErrAmbiguousDependency }
