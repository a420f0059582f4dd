// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/treecli/treecli/internal/config"
	"github.com/treecli/treecli/internal/testutil"
	"github.com/treecli/treecli/pkg/types"
)

type demo struct {
	stdout, stderr bytes.Buffer
	run            func(args ...string) types.ExitCode
}

func newDemo(t *testing.T, cfg *config.Config) *demo {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := &demo{}
	app, err := newApp(&env{cfg: cfg, out: &d.stdout}, log.New(io.Discard), &d.stdout, &d.stderr)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	d.run = func(args ...string) types.ExitCode {
		d.stdout.Reset()
		d.stderr.Reset()
		return app.Run(context.Background(), args)
	}
	return d
}

func TestDemoCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add", []string{"math", "add", "--x", "3"}, "8\n"},
		{"add both", []string{"math", "add", "--x", "3", "--y", "-4"}, "-1\n"},
		{"scale default", []string{"math", "scale", "--value", "2.5"}, "2.5\n"},
		{"scale", []string{"math", "scale", "--value", "2", "--factor", "100"}, "200\n"},
		{"sum", []string{"stats", "sum", "--values", "1", "2", "3"}, "total: 6\n"},
		{"sum label", []string{"stats", "sum", "--label", "n", "--values=4", "--values=-5"}, "n: -1\n"},
		{"mean", []string{"stats", "mean", "--values", "1", "2"}, "1.5\n"},
		{"point", []string{"stats", "point", "--coords", "1.5", "-2"}, "(1.5, -2)\n"},
		{"echo", []string{"text", "echo", "--words", "a", "b", "--sep", "-"}, "a-b\n"},
		{"echo upper", []string{"text", "echo", "--upper", "yes", "--words", "go"}, "GO\n"},
		{"match", []string{"text", "match", "--word", "b", "--among", "a", "b", "b"}, "found b\n"},
		{"count", []string{"text", "count", "--data", "héllo"}, "6 bytes, 5 characters\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDemo(t, nil)
			if code := d.run(tt.args...); code != types.ExitSuccess {
				t.Fatalf("Run(%q) = %d, stderr:\n%s", tt.args, code, d.stderr.String())
			}
			if got := d.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDemoErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		code     types.ExitCode
		contains string
	}{
		{"negative x", []string{"math", "add", "--x", "-1"}, 1, `argument "x" must be >= 0, got -1`},
		{"factor zero", []string{"math", "scale", "--value", "1", "--factor", "0"}, 1, "must be > 0, got 0"},
		{"too many values", []string{"stats", "mean", "--values", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, 1, "have at most 10 elements, got 11 elements"},
		{"point arity", []string{"stats", "point", "--coords", "1"}, 1, "have exactly 2 elements, got 1 element"},
		{"bad bool", []string{"text", "echo", "--words", "x", "--upper", "maybe"}, 1, "maybe"},
		{"no match", []string{"text", "match", "--word", "z", "--among", "a"}, 2, `"z" is not among the candidates`},
		{"long data", []string{"text", "count", "--data", strings.Repeat("x", 65)}, 1, "have at most 64 bytes, got 65 bytes"},
		{"missing file", []string{"file", "size", "--path", filepath.Join(os.TempDir(), "treecli-does-not-exist")}, 2, "no such file"},
		{"bad format", []string{"config", "show", "--format", "yaml"}, 1, `unknown format "yaml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDemo(t, nil)
			if code := d.run(tt.args...); code != tt.code {
				t.Fatalf("Run(%q) = %d, want %d; stderr:\n%s", tt.args, code, tt.code, d.stderr.String())
			}
			if !strings.Contains(d.stderr.String(), tt.contains) {
				t.Errorf("stderr = %q, want it to contain %q", d.stderr.String(), tt.contains)
			}
		})
	}
}

func TestDemoConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Defaults = map[string]any{"math.add.y": 10, "stats.sum.label": "sum"}
	d := newDemo(t, cfg)

	if code := d.run("math", "add", "--x", "1"); code != 0 || d.stdout.String() != "11\n" {
		t.Errorf("math add = %d %q, want the configured y", code, d.stdout.String())
	}
	if code := d.run("stats", "sum", "--values", "2"); code != 0 || d.stdout.String() != "sum: 2\n" {
		t.Errorf("stats sum = %d %q, want the configured label", code, d.stdout.String())
	}
}

func TestDemoInvalidConfigDefault(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Defaults = map[string]any{"math.add.x": -3}
	_, err := newApp(&env{cfg: cfg, out: io.Discard}, log.New(io.Discard), io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "math add --x") {
		t.Errorf("newApp() error = %v, want invalid default for math add --x", err)
	}
}

func TestDemoFileAndConfigInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	testutil.MustWriteFile(t, file, "12345")

	d := newDemo(t, nil)
	if code := d.run("file", "size", "--path", file); code != 0 || d.stdout.String() != "5\n" {
		t.Errorf("file size = %d %q", code, d.stdout.String())
	}

	cfgDir := filepath.Join(dir, "cfg")
	if code := d.run("config", "init", "--dir", cfgDir); code != 0 {
		t.Fatalf("config init = %d, stderr:\n%s", code, d.stderr.String())
	}
	want := filepath.Join(cfgDir, "config.cue")
	if got := strings.TrimSpace(d.stdout.String()); got != want {
		t.Errorf("config init printed %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestDemoConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.LogLevel = config.LogLevelDebug
	d := newDemo(t, cfg)

	if code := d.run("config", "show"); code != 0 || !strings.Contains(d.stdout.String(), `log_level: "debug"`) {
		t.Errorf("config show = %d %q", code, d.stdout.String())
	}
	if code := d.run("config", "show", "--format", "toml"); code != 0 || !strings.Contains(d.stdout.String(), `log_level = 'debug'`) {
		t.Errorf("config show --format toml = %d %q", code, d.stdout.String())
	}
}

func TestDemoHelp(t *testing.T) {
	t.Parallel()

	d := newDemo(t, nil)
	if code := d.run(); code != 0 {
		t.Fatalf("Run() = %d", code)
	}
	for _, want := range []string{"math", "stats", "text", "file", "config", "@args.txt"} {
		if !strings.Contains(d.stdout.String(), want) {
			t.Errorf("root help missing %q:\n%s", want, d.stdout.String())
		}
	}

	d.run("math", "add", "--help")
	if !strings.Contains(d.stdout.String(), "Second operand (default: 5).") {
		t.Errorf("math add help missing default:\n%s", d.stdout.String())
	}
}
