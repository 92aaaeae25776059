// SPDX-License-Identifier: MPL-2.0

// Package resolver locates and loads plugin dependencies by name.
//
// A Resolver searches a directory tree for a loadable unit whose file name is
// the dependency name plus the unit extension, opens the first match in
// lexicographic walk order and caches the handle for the rest of the
// invocation. Units may declare their own dependencies in a sidecar TOML
// manifest; those are resolved the same way after the unit is opened.
//
// File organization:
//   - cache.go: Cache, the name to handle mapping
//   - resolver.go: Resolver and its options
//   - opener.go: Opener, Handle and the Go plugin backed opener
//   - manifest.go: sidecar manifest parsing
//   - errors.go: error kinds
package resolver
