// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"errors"
	"fmt"

	"github.com/treecli/treecli/pkg/argtype"
)

var (
	// ErrConfiguration is wrapped by every error that indicates a wrong
	// command declaration. These are detected before any input is read.
	ErrConfiguration = errors.New("configuration error")
	// ErrUserInput is wrapped by every error caused by the tokens of a
	// single invocation.
	ErrUserInput = errors.New("invalid input")

	// ErrUnsupportedType is the sentinel error wrapped by UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnsupportedConstraint is the sentinel error wrapped by UnsupportedConstraintError.
	ErrUnsupportedConstraint = errors.New("unsupported constraint")
	// ErrInvalidConstraint is the sentinel error wrapped by InvalidConstraintError.
	ErrInvalidConstraint = errors.New("invalid constraint")
	// ErrInvalidConstraintTarget is the sentinel error wrapped by InvalidConstraintTargetError.
	ErrInvalidConstraintTarget = errors.New("invalid constraint target")
	// ErrInvalidContainer is the sentinel error wrapped by InvalidContainerError.
	ErrInvalidContainer = errors.New("invalid container type")

	// ErrInvalidBoolean is the sentinel error wrapped by InvalidBooleanError.
	ErrInvalidBoolean = errors.New("invalid boolean value")
	// ErrCast is the sentinel error wrapped by CastError.
	ErrCast = errors.New("invalid value")
	// ErrValidation is the sentinel error wrapped by ValidationError.
	ErrValidation = errors.New("validation failed")
)

type (
	// UnsupportedTypeError is returned when no type handler is registered
	// for a hint, including container elements that are not scalars.
	UnsupportedTypeError struct {
		Arg  string
		Type string
	}

	// UnsupportedConstraintError is returned when no constraint handler is
	// registered for a constraint's tag.
	UnsupportedConstraintError struct {
		Arg        string
		Constraint string
	}

	// InvalidConstraintError is returned when a constraint's own parameters
	// are inconsistent, such as an interval with both gt and ge.
	InvalidConstraintError struct {
		Arg        string
		Constraint string
		Reason     string
	}

	// InvalidConstraintTargetError is returned when a constraint wraps a type
	// it cannot apply to, such as Gt on a string.
	InvalidConstraintTargetError struct {
		Arg        string
		Constraint string
		Target     string
	}

	// InvalidContainerError is returned for container declarations without
	// an element type, with mixed element types or with a misplaced ellipsis.
	InvalidContainerError struct {
		Arg    string
		Type   string
		Reason string
	}

	// InvalidBooleanError is returned when a token is outside the boolean
	// vocabulary.
	InvalidBooleanError struct {
		Token string
	}

	// CastError is returned when a token cannot be converted to a scalar kind.
	CastError struct {
		Kind  argtype.ScalarKind
		Token string
		Err   error
	}

	// ArgumentError attaches the argument name to a cast failure.
	ArgumentError struct {
		Arg string
		Err error
	}

	// ValidationError is returned when a parsed value violates a constraint.
	// Relation completes "must ...", e.g. "be >= 0" or "have at most 3 elements".
	ValidationError struct {
		Arg      string
		Relation string
		Value    string
		// Element is set when the check ran on one element of a container.
		Element bool
	}
)

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("argument %q: no registered handler for type %s", e.Arg, e.Type)
}

// Unwrap returns the specific sentinel and ErrConfiguration.
func (e *UnsupportedTypeError) Unwrap() []error {
	return []error{ErrUnsupportedType, ErrConfiguration}
}

func (e *UnsupportedConstraintError) Error() string {
	return fmt.Sprintf("argument %q: no registered handler for constraint %s", e.Arg, e.Constraint)
}

// Unwrap returns the specific sentinel and ErrConfiguration.
func (e *UnsupportedConstraintError) Unwrap() []error {
	return []error{ErrUnsupportedConstraint, ErrConfiguration}
}

func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("argument %q: invalid constraint %s: %s", e.Arg, e.Constraint, e.Reason)
}

// Unwrap returns the specific sentinel and ErrConfiguration.
func (e *InvalidConstraintError) Unwrap() []error {
	return []error{ErrInvalidConstraint, ErrConfiguration}
}

func (e *InvalidConstraintTargetError) Error() string {
	return fmt.Sprintf("argument %q: constraint %s cannot be applied to %s", e.Arg, e.Constraint, e.Target)
}

// Unwrap returns the specific sentinel and ErrConfiguration.
func (e *InvalidConstraintTargetError) Unwrap() []error {
	return []error{ErrInvalidConstraintTarget, ErrConfiguration}
}

func (e *InvalidContainerError) Error() string {
	return fmt.Sprintf("argument %q: invalid container type %s: %s", e.Arg, e.Type, e.Reason)
}

// Unwrap returns the specific sentinel and ErrConfiguration.
func (e *InvalidContainerError) Unwrap() []error {
	return []error{ErrInvalidContainer, ErrConfiguration}
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("invalid boolean value: %q (expected true/t/yes/1 or false/f/no/0)", e.Token)
}

// Unwrap returns the specific sentinel and ErrUserInput.
func (e *InvalidBooleanError) Unwrap() []error {
	return []error{ErrInvalidBoolean, ErrUserInput}
}

func (e *CastError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Kind, e.Token)
}

// Unwrap returns the specific sentinel, ErrUserInput and the parse error.
func (e *CastError) Unwrap() []error {
	errs := []error{ErrCast, ErrUserInput}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument --%s: %v", e.Arg, e.Err)
}

// Unwrap returns the underlying cast error.
func (e *ArgumentError) Unwrap() error { return e.Err }

func (e *ValidationError) Error() string {
	if e.Element {
		return fmt.Sprintf("each element of argument %q must %s, got %s", e.Arg, e.Relation, e.Value)
	}
	return fmt.Sprintf("argument %q must %s, got %s", e.Arg, e.Relation, e.Value)
}

// Unwrap returns the specific sentinel and ErrUserInput.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, ErrUserInput}
}
