// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"supplyloader/internal/issue"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `
resolver: {
	search_root: "/opt/units"
	strict:      true
}
plugins: loader_suffix: "Writer"
log: level: "debug"
timeouts: resolve: "1m30s"
samples: {
	batch_size: 50
	rate_limit: 12.5
}
`)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Resolver.SearchRoot != "/opt/units" || !cfg.Resolver.Strict {
		t.Errorf("Resolver = %+v", cfg.Resolver)
	}
	if cfg.Resolver.Extension != DefaultExtension {
		t.Errorf("Extension = %q, want default %q", cfg.Resolver.Extension, DefaultExtension)
	}
	if cfg.Plugins.LoaderSuffix != "Writer" {
		t.Errorf("LoaderSuffix = %q, want Writer", cfg.Plugins.LoaderSuffix)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Timeouts.Resolve != 90*time.Second {
		t.Errorf("Timeouts.Resolve = %s, want 1m30s", cfg.Timeouts.Resolve)
	}
	if cfg.Samples.BatchSize != 50 || cfg.Samples.RateLimit != 12.5 {
		t.Errorf("Samples = %+v", cfg.Samples)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.cue", `resolver: strict: false
log: level: "info"
`)
	t.Setenv(EnvConfigFile, path)
	t.Setenv("SUPPLYLOADER_RESOLVER_STRICT", "true")
	t.Setenv("SUPPLYLOADER_TIMEOUTS_OPERATION", "45s")

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Resolver.Strict {
		t.Error("environment should override resolver.strict from the file")
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want info from the file", cfg.Log.Level)
	}
	if cfg.Timeouts.Operation != 45*time.Second {
		t.Errorf("Timeouts.Operation = %s, want 45s", cfg.Timeouts.Operation)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: missing})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %v", err)
	}
	if ae.Resource != missing || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad log level", content: `log: level: "loud"`, wantErr: "log.level"},
		{name: "bad extension", content: `resolver: extension: "so"`, wantErr: "resolver.extension"},
		{name: "unknown section", content: `ui: color: "red"`, wantErr: "ui"},
		{name: "batch size", content: `samples: batch_size: 0`, wantErr: "samples.batch_size"},
		{name: "duration", content: `timeouts: resolve: "soon"`, wantErr: "timeouts.resolve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName, tt.content)

			_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("SUPPLYLOADER_LOG_LEVEL", "loud")

	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), `invalid log level "loud"`) {
		t.Errorf("error %q should name the bad level", err.Error())
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}
