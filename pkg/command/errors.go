// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingParent is the sentinel error wrapped by MissingParentError.
	ErrMissingParent = errors.New("missing parent command")
	// ErrInvalidPath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("invalid command path")
	// ErrMissingHandler is the sentinel error wrapped by MissingHandlerError.
	ErrMissingHandler = errors.New("missing command handler")
	// ErrInvalidParam is the sentinel error wrapped by InvalidParamError.
	ErrInvalidParam = errors.New("invalid parameter")
)

type (
	// MissingParentError is returned when a leaf is registered below a
	// prefix that was never registered as a base or leaf command.
	MissingParentError struct {
		Path   []string
		Prefix []string
	}

	// InvalidPathError is returned for path segments that cannot become
	// subcommand names.
	InvalidPathError struct {
		Path    []string
		Segment string
		Reason  string
	}

	// MissingHandlerError is returned when a leaf command has no handler.
	MissingHandlerError struct {
		Path []string
	}

	// InvalidParamError is returned for parameter declarations with bad or
	// duplicate names or whitespace-only help.
	InvalidParamError struct {
		Path   []string
		Param  string
		Reason string
	}
)

func (e *MissingParentError) Error() string {
	prefix := strings.Join(e.Prefix, " ")
	return fmt.Sprintf("cannot register %q: parent command %q does not exist; register a base command at %q first",
		strings.Join(e.Path, " "), prefix, prefix)
}

// Unwrap returns ErrMissingParent for errors.Is() compatibility.
func (e *MissingParentError) Unwrap() error { return ErrMissingParent }

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid command path %q: segment %q %s", strings.Join(e.Path, " "), e.Segment, e.Reason)
}

// Unwrap returns ErrInvalidPath for errors.Is() compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("command %q has no handler", displayPath(e.Path))
}

// Unwrap returns ErrMissingHandler for errors.Is() compatibility.
func (e *MissingHandlerError) Unwrap() error { return ErrMissingHandler }

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("command %q: parameter %q %s", displayPath(e.Path), e.Param, e.Reason)
}

// Unwrap returns ErrInvalidParam for errors.Is() compatibility.
func (e *InvalidParamError) Unwrap() error { return ErrInvalidParam }

func displayPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, " ")
}
