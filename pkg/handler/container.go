// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"fmt"

	"github.com/treecli/treecli/pkg/argtype"
	"github.com/treecli/treecli/pkg/types"
)

// ContainerHandler handles list, tuple and set hints. The element type must
// be a single registered scalar; tuples may add a trailing ellipsis.
type ContainerHandler struct {
	Kind argtype.ContainerKind
}

// Build validates the element declaration and returns a one-or-more rule
// whose Wrap builds the typed container.
func (h *ContainerHandler) Build(res *Resolver, name string, hint argtype.TypeHint) (*Rule, error) {
	c, ok := hint.(argtype.Container)
	if !ok {
		return nil, &UnsupportedTypeError{Arg: name, Type: hint.Key()}
	}
	elem, err := containerElem(name, c)
	if err != nil {
		return nil, err
	}

	eh, ok := res.lookupType(elem)
	if !ok {
		return nil, &UnsupportedTypeError{Arg: name, Type: elem.Key()}
	}
	caster, ok := eh.(Caster)
	if !ok {
		// nested containers land here: "list" is registered but cannot cast a token
		return nil, &UnsupportedTypeError{Arg: name, Type: elem.Key()}
	}

	kind, ok := argtype.ScalarOf(elem)
	if !ok {
		return nil, &UnsupportedTypeError{Arg: name, Type: elem.Key()}
	}
	wrap, err := wrapperFor(h.Kind, kind)
	if err != nil {
		return nil, &InvalidContainerError{Arg: name, Type: c.Key(), Reason: err.Error()}
	}

	return &Rule{
		Name:     name,
		TypeName: elem.Key(),
		Arity:    ArityOneOrMore,
		Cast:     caster.Cast,
		Wrap:     wrap,
	}, nil
}

// containerElem returns the single element type of c, accepting
// tuple[T, ...] as tuple[T].
func containerElem(name string, c argtype.Container) (argtype.TypeHint, error) {
	elems := c.Elems
	if len(elems) == 0 {
		return nil, &InvalidContainerError{Arg: name, Type: c.Key(), Reason: "missing element type"}
	}
	if c.Kind == argtype.KindTuple && len(elems) > 1 {
		if _, ok := elems[len(elems)-1].(argtype.Ellipsis); ok {
			elems = elems[:len(elems)-1]
		}
	}
	first := elems[0]
	if first == nil {
		return nil, &InvalidContainerError{Arg: name, Type: c.Key(), Reason: "missing element type"}
	}
	if _, ok := first.(argtype.Ellipsis); ok {
		return nil, &InvalidContainerError{Arg: name, Type: c.Key(), Reason: "ellipsis is not an element type"}
	}
	for _, e := range elems[1:] {
		if e == nil || e.Key() != first.Key() {
			return nil, &InvalidContainerError{Arg: name, Type: c.Key(), Reason: "elements must all be of one type"}
		}
	}
	return first, nil
}

func wrapperFor(ck argtype.ContainerKind, elem argtype.ScalarKind) (func([]any) (any, error), error) {
	switch ck {
	case argtype.KindList:
		switch elem {
		case argtype.KindInt:
			return wrapList[int], nil
		case argtype.KindFloat:
			return wrapList[float64], nil
		case argtype.KindString:
			return wrapList[string], nil
		case argtype.KindBool:
			return wrapList[bool], nil
		case argtype.KindBytes:
			return wrapList[[]byte], nil
		case argtype.KindPath:
			return wrapList[types.FilesystemPath], nil
		}
	case argtype.KindTuple:
		switch elem {
		case argtype.KindInt:
			return wrapTuple[int], nil
		case argtype.KindFloat:
			return wrapTuple[float64], nil
		case argtype.KindString:
			return wrapTuple[string], nil
		case argtype.KindBool:
			return wrapTuple[bool], nil
		case argtype.KindBytes:
			return wrapTuple[[]byte], nil
		case argtype.KindPath:
			return wrapTuple[types.FilesystemPath], nil
		}
	case argtype.KindSet:
		switch elem {
		case argtype.KindInt:
			return wrapSet[int], nil
		case argtype.KindFloat:
			return wrapSet[float64], nil
		case argtype.KindString:
			return wrapSet[string], nil
		case argtype.KindBool:
			return wrapSet[bool], nil
		case argtype.KindBytes:
			return nil, fmt.Errorf("set elements must be comparable, %s is not", elem)
		case argtype.KindPath:
			return wrapSet[types.FilesystemPath], nil
		}
	}
	return nil, fmt.Errorf("unsupported %s element type %s", ck, elem)
}

func collect[T any](items []any) ([]T, error) {
	out := make([]T, len(items))
	for i, it := range items {
		v, ok := it.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("element %d: cast produced %T, want %T", i, it, zero)
		}
		out[i] = v
	}
	return out, nil
}

func wrapList[T any](items []any) (any, error) {
	return collect[T](items)
}

func wrapTuple[T any](items []any) (any, error) {
	out, err := collect[T](items)
	if err != nil {
		return nil, err
	}
	return argtype.Tuple[T](out), nil
}

func wrapSet[T comparable](items []any) (any, error) {
	out, err := collect[T](items)
	if err != nil {
		return nil, err
	}
	return argtype.NewSet(out...), nil
}
