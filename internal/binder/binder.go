// SPDX-License-Identifier: MPL-2.0

package binder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"supplyloader/internal/resolver"
	"supplyloader/pkg/datamodel"
)

// DefaultLoaderSuffix is appended to a plugin identifier to name its loader.
const DefaultLoaderSuffix = "Loader"

var (
	collectorContract = reflect.TypeFor[datamodel.Collector]()
	loaderContract    = reflect.TypeFor[datamodel.Loader]()
)

type (
	// Pair is a bound collector and loader.
	Pair struct {
		Identifier string
		Collector  datamodel.Collector
		Loader     datamodel.Loader
	}

	// Binder resolves and instantiates plugin pairs. Dependencies declared by
	// loadable units go through the Resolver it was given.
	Binder struct {
		resolver     *resolver.Resolver
		registry     *Registry
		opener       resolver.Opener
		pluginDir    string
		loaderSuffix string
		options      datamodel.Options
		logger       *slog.Logger
	}

	// Option configures a Binder during construction.
	Option func(*Binder)
)

// WithRegistry replaces the default registry.
func WithRegistry(r *Registry) Option {
	return func(b *Binder) { b.registry = r }
}

// WithOpener sets how component units are opened.
func WithOpener(o resolver.Opener) Option {
	return func(b *Binder) { b.opener = o }
}

// WithPluginDir sets the directory component units are loaded from.
func WithPluginDir(dir string) Option {
	return func(b *Binder) { b.pluginDir = dir }
}

// WithLoaderSuffix sets the suffix that turns an identifier into the loader
// component name.
func WithLoaderSuffix(suffix string) Option {
	return func(b *Binder) { b.loaderSuffix = suffix }
}

// WithPluginOptions sets the options handed to component factories.
func WithPluginOptions(opts datamodel.Options) Option {
	return func(b *Binder) { b.options = opts }
}

// WithLogger sets the logger for binding diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) { b.logger = l }
}

// New creates a Binder that resolves unit dependencies through r.
func New(r *resolver.Resolver, opts ...Option) *Binder {
	b := &Binder{resolver: r}
	for _, opt := range opts {
		opt(b)
	}
	if b.registry == nil {
		b.registry = DefaultRegistry()
	}
	if b.opener == nil {
		b.opener = resolver.NewPluginOpener()
	}
	if b.pluginDir == "" {
		if wd, err := os.Getwd(); err == nil {
			b.pluginDir = wd
		} else {
			b.pluginDir = "."
		}
	}
	if b.loaderSuffix == "" {
		b.loaderSuffix = DefaultLoaderSuffix
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.options = b.options.WithDefaults()
	return b
}

// Resolver returns the resolver unit dependencies go through.
func (b *Binder) Resolver() *resolver.Resolver { return b.resolver }

// ComponentNames returns the collector and loader component names for
// identifier.
func (b *Binder) ComponentNames(identifier string) (collector, loader string) {
	return identifier, identifier + b.loaderSuffix
}

// Bind instantiates exactly one collector and one loader for identifier.
func (b *Binder) Bind(ctx context.Context, identifier string) (*Pair, error) {
	collectorName, loaderName := b.ComponentNames(identifier)

	c, err := b.instantiate(ctx, identifier, RoleCollector, collectorName)
	if err != nil {
		return nil, err
	}
	if err := checkShape(collectorName, RoleCollector, c, collectorContract); err != nil {
		return nil, err
	}

	l, err := b.instantiate(ctx, identifier, RoleLoader, loaderName)
	if err != nil {
		return nil, err
	}
	if err := checkShape(loaderName, RoleLoader, l, loaderContract); err != nil {
		return nil, err
	}

	b.logger.Debug("plugin pair bound", "identifier", identifier,
		"collector", fmt.Sprintf("%T", c), "loader", fmt.Sprintf("%T", l))
	return &Pair{
		Identifier: identifier,
		Collector:  c.(datamodel.Collector),
		Loader:     l.(datamodel.Loader),
	}, nil
}

// instantiate prefers a registered factory for identifier in role and
// otherwise loads component from the plugin directory.
func (b *Binder) instantiate(ctx context.Context, identifier string, role Role, component string) (any, error) {
	if factory, ok := b.registry.Get(identifier, role); ok {
		b.logger.Debug("plugin component from registry", "identifier", identifier, "role", role)
		v := factory(b.options)
		if v == nil {
			return nil, &PluginLoadError{Component: component, Reason: "registered factory returned nil"}
		}
		return v, nil
	}

	path := filepath.Join(b.pluginDir, component+b.resolver.Extension())
	if _, err := os.Stat(path); err != nil {
		reason := "cannot access plugin file"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "plugin file not found"
			err = nil
		}
		return nil, &PluginLoadError{Component: component, Path: path, Reason: reason, Err: err}
	}

	if err := b.resolver.ResolveRequirements(ctx, component, path); err != nil {
		return nil, &PluginLoadError{Component: component, Path: path, Reason: "cannot resolve its dependencies", Err: err}
	}

	b.logger.Debug("opening plugin component", "component", component, "path", path)
	h, err := b.opener.Open(path)
	if err != nil {
		return nil, &PluginLoadError{Component: component, Path: path, Reason: "cannot open plugin file", Err: err}
	}
	sym, err := h.Lookup(component)
	if err != nil {
		return nil, &PluginLoadError{Component: component, Path: path, Reason: "exported symbol not found", Err: err}
	}

	v := b.fromSymbol(sym)
	if v == nil {
		return nil, &PluginLoadError{Component: component, Path: path, Reason: "exported symbol produced no instance"}
	}
	return v, nil
}

// fromSymbol turns an exported symbol into a component instance. Functions
// are called as factories. Exported variables arrive as pointers: a factory
// variable is called, an interface variable yields the value it holds, and
// anything else is used as is.
func (b *Binder) fromSymbol(sym any) any {
	switch f := sym.(type) {
	case func() any:
		return f()
	case func(datamodel.Options) any:
		return f(b.options)
	case *func() any:
		if f == nil || *f == nil {
			return nil
		}
		return (*f)()
	case *func(datamodel.Options) any:
		if f == nil || *f == nil {
			return nil
		}
		return (*f)(b.options)
	default:
		rv := reflect.ValueOf(sym)
		if rv.Kind() == reflect.Pointer && rv.Type().Elem().Kind() == reflect.Interface {
			if rv.IsNil() || rv.Elem().IsNil() {
				return nil
			}
			return rv.Elem().Interface()
		}
		return sym
	}
}

// checkShape verifies v implements contract, listing every method that is
// absent or has the wrong signature.
func checkShape(component string, role Role, v any, contract reflect.Type) error {
	rv := reflect.ValueOf(v)
	if rv.Type().Implements(contract) {
		return nil
	}

	var missing []string
	for i := range contract.NumMethod() {
		want := contract.Method(i)
		got := rv.MethodByName(want.Name)
		if !got.IsValid() || got.Type() != want.Type {
			missing = append(missing, want.Name)
		}
	}
	return &PluginShapeError{Component: component, Role: role, Missing: missing}
}
