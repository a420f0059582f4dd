// SPDX-License-Identifier: MPL-2.0

package argtype

import "strings"

// Built-in scalar hints.
var (
	Int    = Scalar{Kind: KindInt}
	Float  = Scalar{Kind: KindFloat}
	String = Scalar{Kind: KindString}
	Bool   = Scalar{Kind: KindBool}
	Bytes  = Scalar{Kind: KindBytes}
	Path   = Scalar{Kind: KindPath}

	// Variadic is the trailing "..." marker of tuple[T, ...].
	Variadic = Ellipsis{}
)

type (
	// TypeHint is the declared type of a parameter. Implementations are
	// Scalar, Container, Ellipsis and Annotated.
	TypeHint interface {
		// Key is the exact annotation key, e.g. "int" or "list[int]".
		Key() string
		// Origin is the unparameterized form used as the lookup fallback,
		// e.g. "list" for "list[int]".
		Origin() string
		String() string

		typeHint()
	}

	// Scalar is a single-token type.
	Scalar struct {
		Kind ScalarKind
	}

	// Container is a homogeneous container of scalar elements. Elems holds
	// the element type arguments exactly as declared; the container handler
	// rejects empty, mixed or nested element lists.
	Container struct {
		Kind  ContainerKind
		Elems []TypeHint
	}

	// Ellipsis marks a variadic trailing element (tuple[int, ...]).
	Ellipsis struct{}

	// Annotated wraps a base type in a single constraint.
	Annotated struct {
		Base       TypeHint
		Constraint Constraint
	}
)

// ListOf declares list[elems...].
func ListOf(elems ...TypeHint) Container { return Container{Kind: KindList, Elems: elems} }

// TupleOf declares tuple[elems...].
func TupleOf(elems ...TypeHint) Container { return Container{Kind: KindTuple, Elems: elems} }

// SetOf declares set[elems...].
func SetOf(elems ...TypeHint) Container { return Container{Kind: KindSet, Elems: elems} }

// Annotate wraps base in constraint c.
func Annotate(base TypeHint, c Constraint) Annotated {
	return Annotated{Base: base, Constraint: c}
}

func (s Scalar) Key() string    { return string(s.Kind) }
func (s Scalar) Origin() string { return string(s.Kind) }
func (s Scalar) String() string { return s.Key() }
func (Scalar) typeHint()        {}

// Key renders the container with its element arguments, or just the
// container kind when no element type was declared.
func (c Container) Key() string {
	if len(c.Elems) == 0 {
		return string(c.Kind)
	}
	elems := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		if e == nil {
			elems[i] = "<nil>"
			continue
		}
		elems[i] = e.Key()
	}
	return string(c.Kind) + "[" + strings.Join(elems, ", ") + "]"
}

func (c Container) Origin() string { return string(c.Kind) }
func (c Container) String() string { return c.Key() }
func (Container) typeHint()        {}

// Elem returns the first declared element type, if any.
func (c Container) Elem() (TypeHint, bool) {
	if len(c.Elems) == 0 {
		return nil, false
	}
	return c.Elems[0], true
}

func (Ellipsis) Key() string    { return "..." }
func (Ellipsis) Origin() string { return "..." }
func (Ellipsis) String() string { return "..." }
func (Ellipsis) typeHint()      {}

func (a Annotated) Key() string {
	base, c := "<nil>", "<nil>"
	if a.Base != nil {
		base = a.Base.Key()
	}
	if a.Constraint != nil {
		c = a.Constraint.String()
	}
	return "Annotated[" + base + ", " + c + "]"
}

func (Annotated) Origin() string   { return "Annotated" }
func (a Annotated) String() string { return a.Key() }
func (Annotated) typeHint()        {}

// ScalarOf returns the scalar kind of h when h is a Scalar.
func ScalarOf(h TypeHint) (ScalarKind, bool) {
	s, ok := h.(Scalar)
	if !ok {
		return "", false
	}
	return s.Kind, true
}
