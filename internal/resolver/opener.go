// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"plugin"
)

// DefaultExtension is the file extension of loadable units.
const DefaultExtension = ".so"

type (
	// Handle is a loaded unit whose exported symbols can be looked up.
	// *plugin.Plugin satisfies it.
	Handle interface {
		Lookup(symbol string) (plugin.Symbol, error)
	}

	// Opener loads the unit at path.
	Opener interface {
		Open(path string) (Handle, error)
	}

	// OpenerFunc adapts a function to the Opener interface.
	OpenerFunc func(path string) (Handle, error)

	goPluginOpener struct{}
)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Handle, error) { return f(path) }

// NewPluginOpener returns an Opener backed by the Go plugin package. Units
// must be built with -buildmode=plugin by the same toolchain as the harness.
func NewPluginOpener() Opener {
	return goPluginOpener{}
}

func (goPluginOpener) Open(path string) (Handle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plugin %s: %w", path, err)
	}
	return p, nil
}
