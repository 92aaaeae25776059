// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"slices"
	"strings"
	"sync"
	"testing"

	"supplyloader/internal/dag"
)

type (
	fakeHandle struct {
		path string
	}

	recordingOpener struct {
		mu     sync.Mutex
		opened []string
		err    error
	}
)

func (h *fakeHandle) Lookup(symbol string) (plugin.Symbol, error) {
	return nil, fmt.Errorf("symbol %s not found in %s", symbol, h.path)
}

func (o *recordingOpener) Open(path string) (Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	if o.err != nil {
		return nil, o.err
	}
	return &fakeHandle{path: path}, nil
}

func (o *recordingOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.opened)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates files relative to root. Each value is the file content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

func newTestResolver(root string, opener Opener, opts ...Option) *Resolver {
	base := []Option{WithSearchRoot(root), WithOpener(opener), WithLogger(discardLogger())}
	return New(append(base, opts...)...)
}

func TestResolve_CacheHitSkipsFilesystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"lib/Models.so": "unit"})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	first, err := r.Resolve(t.Context(), "Models")
	if err != nil {
		t.Fatalf("first Resolve() error: %v", err)
	}

	// The file is gone; a second resolution must still succeed from cache.
	if err := os.Remove(filepath.Join(root, "lib", "Models.so")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	second, err := r.Resolve(t.Context(), "Models")
	if err != nil {
		t.Fatalf("second Resolve() error: %v", err)
	}
	if first != second {
		t.Error("second Resolve() returned a different handle")
	}
	if got := r.Searches(); got != 1 {
		t.Errorf("Searches() = %d, want 1", got)
	}
	if got := len(opener.Opened()); got != 1 {
		t.Errorf("opened %d times, want 1", got)
	}
	if got := r.Cache().Names(); !slices.Equal(got, []string{"Models"}) {
		t.Errorf("cache names = %v, want [Models]", got)
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Models.dll":     "wrong extension",
		"ModelsExtra.so": "longer name",
		"sub/models.txt": "unrelated",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	_, err := r.Resolve(t.Context(), "Models")
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingDependencyError, got %T", err)
	}
	if missing.Name != "Models" || missing.SearchRoot != root {
		t.Errorf("error = %+v, want Name=Models SearchRoot=%s", missing, root)
	}
	if errors.Is(err, ErrAmbiguousDependency) {
		t.Error("missing dependency must not be reported as ambiguous")
	}
	if len(opener.Opened()) != 0 {
		t.Errorf("nothing should be opened, got %v", opener.Opened())
	}
	if r.Cache().Len() != 0 {
		t.Errorf("cache should stay empty, has %v", r.Cache().Names())
	}
}

func TestResolve_MissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "does-not-exist")
	r := newTestResolver(root, &recordingOpener{})

	_, err := r.Resolve(t.Context(), "Models")
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
}

func TestResolve_FirstMatchInLexicalOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zeta/Models.so":       "z",
		"alpha/beta/Models.so": "ab",
		"alpha/Models.so":      "a",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	if _, err := r.Resolve(t.Context(), "Models"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := filepath.Join(root, "alpha", "Models.so")
	if got := opener.Opened(); !slices.Equal(got, []string{want}) {
		t.Errorf("opened %v, want [%s]", got, want)
	}
}

func TestResolve_StrictAmbiguity(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/Models.so": "a",
		"b/Models.so": "b",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener, WithStrict(true))

	_, err := r.Resolve(t.Context(), "Models")
	var ambiguous *AmbiguousDependencyError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected *AmbiguousDependencyError, got %v", err)
	}
	want := []string{filepath.Join(root, "a", "Models.so"), filepath.Join(root, "b", "Models.so")}
	if !slices.Equal(ambiguous.Candidates, want) {
		t.Errorf("candidates = %v, want %v", ambiguous.Candidates, want)
	}
	if !errors.Is(err, ErrAmbiguousDependency) {
		t.Error("expected errors.Is(err, ErrAmbiguousDependency)")
	}
	if !strings.Contains(err.Error(), "2 candidates") {
		t.Errorf("error message %q should count candidates", err.Error())
	}
	if len(opener.Opened()) != 0 {
		t.Errorf("nothing should be opened in strict mode, got %v", opener.Opened())
	}
}

func TestResolve_Transitive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"plugins/Collector.so":   "c",
		"plugins/Collector.toml": `requires = ["Models", " ", "Core"]`,
		"shared/Models.so":       "m",
		"shared/Models.toml":     `requires = ["Core"]`,
		"shared/core/Core.so":    "core",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	if _, err := r.Resolve(t.Context(), "Collector"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got, want := r.Cache().Names(), []string{"Collector", "Core", "Models"}; !slices.Equal(got, want) {
		t.Errorf("cache names = %v, want %v", got, want)
	}
	if got := len(opener.Opened()); got != 3 {
		t.Errorf("opened %d units, want 3 (each once)", got)
	}
	order, err := r.LoadOrder()
	if err != nil {
		t.Fatalf("LoadOrder() error: %v", err)
	}
	if got, want := order, []string{"Core", "Models", "Collector"}; !slices.Equal(got, want) {
		t.Errorf("LoadOrder() = %v, want %v", got, want)
	}
}

func TestResolve_CycleTerminates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"A.so":   "a",
		"A.toml": `requires = ["B"]`,
		"B.so":   "b",
		"B.toml": `requires = ["A"]`,
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	if _, err := r.Resolve(t.Context(), "A"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got := len(opener.Opened()); got != 2 {
		t.Errorf("opened %d units, want 2", got)
	}
	_, err := r.LoadOrder()
	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) {
		t.Errorf("expected *dag.CycleError from LoadOrder, got %v", err)
	}
}

func TestResolve_MissingTransitive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Collector.so":   "c",
		"Collector.toml": `requires = ["Ghost"]`,
	})
	r := newTestResolver(root, &recordingOpener{})

	_, err := r.Resolve(t.Context(), "Collector")
	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingDependencyError, got %v", err)
	}
	if missing.Name != "Ghost" {
		t.Errorf("missing name = %q, want Ghost", missing.Name)
	}
	if !strings.Contains(err.Error(), `required by "Collector"`) {
		t.Errorf("error %q should name the dependent unit", err.Error())
	}
}

func TestResolve_OpenFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"Broken.so": "not a plugin"})
	openErr := errors.New("invalid ELF header")
	r := newTestResolver(root, &recordingOpener{err: openErr})

	_, err := r.Resolve(t.Context(), "Broken")
	if !errors.Is(err, openErr) {
		t.Fatalf("expected open error in chain, got %v", err)
	}
	if errors.Is(err, ErrMissingDependency) {
		t.Error("open failure must not be reported as missing")
	}
	if r.Cache().Len() != 0 {
		t.Error("failed open must not be cached")
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"Models.so": "m"})
	r := newTestResolver(root, &recordingOpener{})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := r.Resolve(ctx, "Models")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolve_CustomExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Models.so":    "so",
		"x/Models.dll": "dll",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener, WithExtension(".dll"))

	if _, err := r.Resolve(t.Context(), "Models"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := filepath.Join(root, "x", "Models.dll")
	if got := opener.Opened(); !slices.Equal(got, []string{want}) {
		t.Errorf("opened %v, want [%s]", got, want)
	}
}

func TestResolveRequirements(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"plugins/FooLoader.toml": `requires = ["Models"]`,
		"lib/Models.so":          "m",
	})
	opener := &recordingOpener{}
	r := newTestResolver(root, opener)

	unit := filepath.Join(root, "plugins", "FooLoader.so")
	if err := r.ResolveRequirements(t.Context(), "FooLoader", unit); err != nil {
		t.Fatalf("ResolveRequirements() error: %v", err)
	}
	if _, ok := r.Cache().Get("Models"); !ok {
		t.Error("Models should be cached")
	}
	if _, ok := r.Cache().Get("FooLoader"); ok {
		t.Error("the dependent itself is not opened by ResolveRequirements")
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	r := New(WithSearchRoot("/plugins"))
	if r.Extension() != DefaultExtension {
		t.Errorf("Extension() = %q, want %q", r.Extension(), DefaultExtension)
	}
	if r.SearchRoot() != "/plugins" {
		t.Errorf("SearchRoot() = %q, want /plugins", r.SearchRoot())
	}
	if r.Cache() == nil || r.Cache().Len() != 0 {
		t.Error("expected an empty cache")
	}
}
