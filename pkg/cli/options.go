// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/treecli/treecli/pkg/handler"
)

type (
	// Option configures Build.
	Option func(*options)

	options struct {
		name        string
		short       string
		description string
		epilog      string
		version     string
		commit      string
		filePrefix  string
		resolver    *handler.Resolver
		logger      *log.Logger
		stdout      io.Writer
		stderr      io.Writer
		defaults    map[string]any
		verbose     bool
		guideStyle  string
	}
)

func defaultOptions() options {
	return options{
		name:       filepath.Base(os.Args[0]),
		logger:     log.New(io.Discard),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		guideStyle: "notty",
	}
}

// WithName sets the program name shown in usage lines.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithShort sets the root one-line description.
func WithShort(short string) Option {
	return func(o *options) { o.short = short }
}

// WithDescription sets the root long description.
func WithDescription(desc string) Option {
	return func(o *options) { o.description = desc }
}

// WithEpilog sets text printed after the root description.
func WithEpilog(epilog string) Option {
	return func(o *options) { o.epilog = epilog }
}

// WithVersion enables --version.
func WithVersion(version, commit string) Option {
	return func(o *options) {
		o.version = version
		o.commit = commit
	}
}

// WithFromFilePrefix makes tokens starting with prefix ("@" usually) expand
// to the arguments stored in the named file. The file is split into shell
// words, not one argument per line: a line "my total" gives two arguments,
// so quote it ('my total') to keep it as one. Files may name further files
// with the same prefix.
func WithFromFilePrefix(prefix string) Option {
	return func(o *options) { o.filePrefix = prefix }
}

// WithResolver replaces the default handler.Resolver, e.g. to add custom
// type handlers.
func WithResolver(r *handler.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithLogger sets the logger for build and dispatch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOutput sets the writers for help and errors.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithDefaults overrides declared defaults. Keys are the command path and
// parameter name joined by dots ("math.add.y"); values are parsed through
// the parameter's rule when they are strings, numbers, booleans or lists.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) { o.defaults = defaults }
}

// WithVerbose prints the full error chain and guidance for errors.
func WithVerbose(verbose bool) Option {
	return func(o *options) { o.verbose = verbose }
}

// WithGuidanceStyle sets the glamour style ("auto", "dark", "light" or
// "notty") used for the guidance printed in verbose mode.
func WithGuidanceStyle(style string) Option {
	return func(o *options) {
		if style != "" {
			o.guideStyle = style
		}
	}
}
