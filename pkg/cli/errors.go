// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/treecli/treecli/pkg/handler"
	"github.com/treecli/treecli/pkg/types"
)

var (
	// ErrMissingTypeHint is the sentinel error wrapped by MissingTypeHintError.
	ErrMissingTypeHint = errors.New("missing type hint")
	// ErrInvalidDefault is the sentinel error wrapped by InvalidDefaultError.
	ErrInvalidDefault = errors.New("invalid default value")
	// ErrNoBinding is returned when a command without behavior is selected.
	ErrNoBinding = errors.New("command has no behavior")
)

type (
	// ExitError signals a non-zero exit code. Handlers may return it to pick
	// their own exit status.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// UsageError is returned by Parse for anything wrong with argv: unknown
	// commands or flags, missing required flags, cast and validation
	// failures.
	UsageError struct {
		// Command is the full name of the command being parsed, e.g. "calc math add".
		Command string
		Err     error
	}

	// MissingTypeHintError is returned when a parameter has no type.
	MissingTypeHintError struct {
		Path  []string
		Param string
	}

	// InvalidDefaultError is returned when a default cannot be parsed by the
	// parameter's rule.
	InvalidDefaultError struct {
		Path    []string
		Param   string
		Default any
		Err     error
	}
)

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the parse error and handler.ErrUserInput.
func (e *UsageError) Unwrap() []error {
	return []error{e.Err, handler.ErrUserInput}
}

func (e *MissingTypeHintError) Error() string {
	return fmt.Sprintf("command %q: parameter %q has no type", displayPath(e.Path), e.Param)
}

// Unwrap returns ErrMissingTypeHint and handler.ErrConfiguration.
func (e *MissingTypeHintError) Unwrap() []error {
	return []error{ErrMissingTypeHint, handler.ErrConfiguration}
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("command %q: default %v for parameter %q: %v", displayPath(e.Path), e.Default, e.Param, e.Err)
}

// Unwrap returns ErrInvalidDefault, handler.ErrConfiguration and the cause.
func (e *InvalidDefaultError) Unwrap() []error {
	return []error{ErrInvalidDefault, handler.ErrConfiguration, e.Err}
}

func displayPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, " ")
}
