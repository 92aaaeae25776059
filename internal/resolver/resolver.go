// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"supplyloader/internal/dag"
)

type (
	// Resolver locates units by name under a search root, opens them and caches
	// the handles. A Resolver lives for one invocation.
	Resolver struct {
		searchRoot string
		extension  string
		strict     bool
		timeout    time.Duration
		opener     Opener
		logger     *slog.Logger
		cache      *Cache
		graph      *dag.Graph

		mu       sync.Mutex
		searches int
	}

	// Option configures a Resolver during construction.
	Option func(*Resolver)
)

// WithSearchRoot sets the directory tree to search. Defaults to the working
// directory.
func WithSearchRoot(root string) Option {
	return func(r *Resolver) { r.searchRoot = root }
}

// WithExtension sets the unit file extension, including the dot.
func WithExtension(ext string) Option {
	return func(r *Resolver) { r.extension = ext }
}

// WithStrict makes multiple matches for a name an AmbiguousDependencyError
// instead of a warning.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithTimeout bounds each top-level Resolve call. Zero means unbounded.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithOpener replaces the Go plugin opener.
func WithOpener(o Opener) Option {
	return func(r *Resolver) { r.opener = o }
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithCache shares an existing cache with the Resolver.
func WithCache(c *Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// New creates a Resolver. Missing options fall back to the working
// directory, DefaultExtension, the Go plugin opener and slog.Default().
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.searchRoot == "" {
		if wd, err := os.Getwd(); err == nil {
			r.searchRoot = wd
		} else {
			r.searchRoot = "."
		}
	}
	if r.extension == "" {
		r.extension = DefaultExtension
	}
	if r.opener == nil {
		r.opener = NewPluginOpener()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	r.graph = dag.New()
	return r
}

// SearchRoot returns the directory tree searched for units.
func (r *Resolver) SearchRoot() string { return r.searchRoot }

// Extension returns the unit file extension.
func (r *Resolver) Extension() string { return r.extension }

// Cache returns the resolver's cache.
func (r *Resolver) Cache() *Cache { return r.cache }

// Searches returns how many filesystem walks the resolver has performed.
func (r *Resolver) Searches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searches
}

// Resolve returns the handle for the unit called name. A cached name is
// returned without touching the filesystem. Otherwise the first match in
// lexicographic walk order is opened, cached, and its manifest requirements
// are resolved in turn. No match yields a *MissingDependencyError.
func (r *Resolver) Resolve(ctx context.Context, name string) (Handle, error) {
	if h, ok := r.cache.Get(name); ok {
		r.logger.Debug("dependency cache hit", "name", name)
		return h, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.resolve(ctx, name)
}

// ResolveRequirements resolves every requirement listed in the manifest of
// the unit at unitPath on behalf of dependent. It is used before a unit that
// is opened outside the resolver, such as a plugin component.
func (r *Resolver) ResolveRequirements(ctx context.Context, dependent, unitPath string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.resolveManifest(ctx, dependent, unitPath)
}

// LoadOrder returns every unit seen so far after the units it requires.
func (r *Resolver) LoadOrder() ([]string, error) {
	if r.graph.Len() == 0 {
		return nil, nil
	}
	return r.graph.LoadOrder()
}

func (r *Resolver) resolve(ctx context.Context, name string) (Handle, error) {
	if h, ok := r.cache.Get(name); ok {
		r.logger.Debug("dependency cache hit", "name", name)
		return h, nil
	}

	r.logger.Debug("resolving dependency", "name", name, "root", r.searchRoot)
	candidates, err := r.search(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &MissingDependencyError{Name: name, SearchRoot: r.searchRoot}
	}
	if len(candidates) > 1 {
		if r.strict {
			return nil, &AmbiguousDependencyError{Name: name, Candidates: candidates}
		}
		r.logger.Warn("multiple candidates for dependency, using first",
			"name", name, "chosen", candidates[0], "ignored", candidates[1:])
	}

	path := candidates[0]
	h, err := r.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dependency %q from %s: %w", name, path, err)
	}
	if !r.cache.Put(name, h) {
		// Only reachable if two callers race on the same name.
		r.logger.Error("dependency cached twice, keeping first handle", "name", name, "path", path)
		h, _ = r.cache.Get(name)
	}
	r.graph.AddUnit(name)
	r.logger.Debug("dependency resolved", "name", name, "path", path)

	if err := r.resolveManifest(ctx, name, path); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *Resolver) resolveManifest(ctx context.Context, dependent, unitPath string) error {
	m, err := ReadManifest(unitPath)
	if err != nil {
		return err
	}
	r.graph.AddUnit(dependent)
	for _, req := range m.Requires {
		r.graph.Require(dependent, req)
		if _, err := r.resolve(ctx, req); err != nil {
			return fmt.Errorf("resolve %q required by %q: %w", req, dependent, err)
		}
	}
	return nil
}

// search walks the search root and returns every file named name+extension
// in walk order. Unreadable directories are skipped.
func (r *Resolver) search(ctx context.Context, name string) ([]string, error) {
	r.mu.Lock()
	r.searches++
	r.mu.Unlock()

	target := name + r.extension
	var matches []string
	err := filepath.WalkDir(r.searchRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != r.searchRoot {
				r.logger.Debug("skipping unreadable directory", "path", path, "error", err)
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != target {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		r.logger.Debug("dependency candidate", "name", name, "path", path)
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search for dependency %q: %w", name, err)
	}
	return matches, nil
}
