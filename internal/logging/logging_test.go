// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{level: "debug", wantDebug: true, wantWarn: true},
		{level: "info", wantDebug: false, wantWarn: true},
		{level: "warn", wantDebug: false, wantWarn: true},
		{level: "error", wantDebug: false, wantWarn: false},
		{level: "bogus", wantDebug: false, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := New(&buf, tt.level)
			logger.Debug("resolving dependency", "name", "Models")
			logger.Warn("multiple candidates", "name", "Models")

			out := buf.String()
			if got := strings.Contains(out, "resolving dependency"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "multiple candidates"); got != tt.wantWarn {
				t.Errorf("warn line present = %v, want %v\n%s", got, tt.wantWarn, out)
			}
		})
	}
}

func TestNew_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "info").Info("dependency resolved", "name", "Models", "path", "/opt/Models.so")

	out := buf.String()
	for _, want := range []string{Prefix, "dependency resolved", "name=Models", "path=/opt/Models.so"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	var buf bytes.Buffer
	Setup(&buf, "debug")
	slog.Debug("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("slog.Default() should write to the configured writer, got %q", buf.String())
	}
}
