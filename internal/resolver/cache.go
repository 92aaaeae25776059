// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"sort"
	"sync"
)

// Cache maps dependency names to loaded handles. Entries are added once and
// never evicted or replaced.
type Cache struct {
	mu      sync.Mutex
	handles map[string]Handle
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{handles: make(map[string]Handle)}
}

// Get returns the handle cached under name.
func (c *Cache) Get(name string) (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.handles[name]
	return h, ok
}

// Put caches h under name if name is not cached yet. It reports whether the
// entry was inserted; an existing entry is never overwritten.
func (c *Cache) Put(name string, h Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.handles[name]; exists {
		return false
	}
	c.handles[name] = h
	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Names returns the cached names in sorted order.
func (c *Cache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.handles))
	for name := range c.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
