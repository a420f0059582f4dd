// SPDX-License-Identifier: MPL-2.0

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"", false, true},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l, err := New(&buf, tt.level)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			l.Debug("registered command", "path", "math add")
			l.Warn("careful")

			out := buf.String()
			if got := strings.Contains(out, "registered command"); got != tt.wantDebug {
				t.Errorf("debug written = %v, want %v:\n%s", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "careful"); got != tt.wantWarn {
				t.Errorf("warn written = %v, want %v:\n%s", got, tt.wantWarn, out)
			}
		})
	}
}

func TestNewNoTimestamp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello", "path", "math add")
	got := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(got, "INFO") {
		t.Errorf("line = %q, should start with the level", got)
	}
	for _, want := range []string{"treecli", "hello", "math add"} {
		if !strings.Contains(got, want) {
			t.Errorf("line = %q, missing %q", got, want)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Error("New() should reject unknown levels")
	}
}
