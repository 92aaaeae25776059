// SPDX-License-Identifier: MPL-2.0

// Package dag records which loadable units require which others and derives a
// load order from those edges. The resolver feeds it from dependency
// manifests; a cycle is not fatal to resolution but is reported.
package dag

import (
	"fmt"
	"strings"
	"sync"
)

type (
	// CycleError reports units that can never reach zero unmet requirements.
	CycleError struct {
		Units []string
	}

	// Graph is a concurrency-safe requirement graph. An edge dependency ->
	// dependent means the dependency loads first. Units keep first-seen order
	// so LoadOrder is deterministic.
	Graph struct {
		mu         sync.Mutex
		dependents map[string][]string
		seen       map[string]bool
		units      []string
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("requirement cycle between units: %s", strings.Join(e.Units, ", "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		seen:       make(map[string]bool),
	}
}

// AddUnit records a unit with no requirements. Re-adding is a no-op.
func (g *Graph) AddUnit(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addUnitLocked(name)
}

// Require records that dependent needs dependency loaded first.
func (g *Graph) Require(dependent, dependency string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addUnitLocked(dependency)
	g.addUnitLocked(dependent)
	for _, existing := range g.dependents[dependency] {
		if existing == dependent {
			return
		}
	}
	g.dependents[dependency] = append(g.dependents[dependency], dependent)
}

// Len returns the number of recorded units.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.units)
}

// LoadOrder returns every unit after all of its requirements (Kahn's
// algorithm). Units with equal standing keep first-seen order.
func (g *Graph) LoadOrder() ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.units) == 0 {
		return nil, nil
	}

	pending := make(map[string]int, len(g.units))
	for _, deps := range g.dependents {
		for _, d := range deps {
			pending[d]++
		}
	}

	ready := make([]string, 0, len(g.units))
	for _, u := range g.units {
		if pending[u] == 0 {
			ready = append(ready, u)
		}
	}

	order := make([]string, 0, len(g.units))
	for len(ready) > 0 {
		u := ready[0]
		ready = ready[1:]
		order = append(order, u)
		for _, d := range g.dependents[u] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) != len(g.units) {
		var stuck []string
		for _, u := range g.units {
			if pending[u] > 0 {
				stuck = append(stuck, u)
			}
		}
		return nil, &CycleError{Units: stuck}
	}
	return order, nil
}

func (g *Graph) addUnitLocked(name string) {
	if g.seen[name] {
		return
	}
	g.seen[name] = true
	g.units = append(g.units, name)
}
