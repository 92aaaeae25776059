// SPDX-License-Identifier: MPL-2.0

package binder

import (
	"fmt"
	"slices"
	"sync"

	"supplyloader/pkg/datamodel"
)

type (
	// Factory creates a plugin component instance.
	Factory func(opts datamodel.Options) any

	// Registry holds plugin component factories indexed by plugin identifier
	// and role. Entries do not depend on the loader suffix in effect.
	Registry struct {
		mu        sync.RWMutex
		factories map[registryKey]Factory
	}

	registryKey struct {
		identifier string
		role       Role
	}
)

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[registryKey]Factory)}
}

// Register adds the factory for identifier's component in role.
// Panics if the pair is already registered or the factory is nil.
func (r *Registry) Register(identifier string, role Role, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("nil plugin factory for %s %s", identifier, role))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{identifier: identifier, role: role}
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("plugin %s already registered for %s", role, identifier))
	}
	r.factories[key] = factory
}

// Get returns the factory for identifier's component in role.
func (r *Registry) Get(identifier string, role Role) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[registryKey{identifier: identifier, role: role}]
	return f, ok
}

// List returns the registered plugin identifiers, sorted and without
// duplicates.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for key := range r.factories {
		ids = append(ids, key.identifier)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// DefaultRegistry returns the process-wide registry built-in plugins add
// themselves to.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
