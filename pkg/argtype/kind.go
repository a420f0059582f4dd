// SPDX-License-Identifier: MPL-2.0

package argtype

import (
	"errors"
	"fmt"
)

const (
	// KindInt parses base-10 integers into int.
	KindInt ScalarKind = "int"
	// KindFloat parses floating-point numbers into float64.
	KindFloat ScalarKind = "float"
	// KindString keeps the token as-is.
	KindString ScalarKind = "str"
	// KindBool parses the true/t/yes/1 and false/f/no/0 vocabulary.
	KindBool ScalarKind = "bool"
	// KindBytes encodes the token as UTF-8 bytes.
	KindBytes ScalarKind = "bytes"
	// KindPath wraps the token in a types.FilesystemPath.
	KindPath ScalarKind = "path"

	// KindList collects one or more elements into a []T, preserving order.
	KindList ContainerKind = "list"
	// KindTuple collects one or more elements into a Tuple[T], preserving order.
	KindTuple ContainerKind = "tuple"
	// KindSet collects one or more elements into a Set[T].
	KindSet ContainerKind = "set"
)

var (
	// ErrInvalidScalarKind is returned when a ScalarKind value is not one of the defined kinds.
	ErrInvalidScalarKind = errors.New("invalid scalar kind")
	// ErrInvalidContainerKind is returned when a ContainerKind value is not one of the defined kinds.
	ErrInvalidContainerKind = errors.New("invalid container kind")
)

type (
	// ScalarKind names a single-token value type.
	ScalarKind string

	// ContainerKind names a homogeneous multi-token value type.
	ContainerKind string

	// InvalidScalarKindError is returned when a ScalarKind value is not recognized.
	// It wraps ErrInvalidScalarKind for errors.Is() compatibility.
	InvalidScalarKindError struct {
		Value ScalarKind
	}

	// InvalidContainerKindError is returned when a ContainerKind value is not recognized.
	// It wraps ErrInvalidContainerKind for errors.Is() compatibility.
	InvalidContainerKindError struct {
		Value ContainerKind
	}
)

// Error implements the error interface for InvalidScalarKindError.
func (e *InvalidScalarKindError) Error() string {
	return fmt.Sprintf("invalid scalar kind %q (valid: int, float, str, bool, bytes, path)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidScalarKindError) Unwrap() error { return ErrInvalidScalarKind }

// Error implements the error interface for InvalidContainerKindError.
func (e *InvalidContainerKindError) Error() string {
	return fmt.Sprintf("invalid container kind %q (valid: list, tuple, set)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerKindError) Unwrap() error { return ErrInvalidContainerKind }

// Validate returns an error if the kind is not one of the defined scalar kinds.
func (k ScalarKind) Validate() error {
	switch k {
	case KindInt, KindFloat, KindString, KindBool, KindBytes, KindPath:
		return nil
	default:
		return &InvalidScalarKindError{Value: k}
	}
}

// IsNumeric reports whether values of this kind can be compared against
// inequality and interval thresholds.
func (k ScalarKind) IsNumeric() bool { return k == KindInt || k == KindFloat }

// HasLength reports whether values of this kind have a length that
// MinLen/MaxLen/Len constraints can check.
func (k ScalarKind) HasLength() bool { return k == KindString || k == KindBytes }

// String returns the kind name as it appears in type keys.
func (k ScalarKind) String() string { return string(k) }

// Validate returns an error if the kind is not one of the defined container kinds.
func (k ContainerKind) Validate() error {
	switch k {
	case KindList, KindTuple, KindSet:
		return nil
	default:
		return &InvalidContainerKindError{Value: k}
	}
}

// String returns the kind name as it appears in type keys.
func (k ContainerKind) String() string { return string(k) }
