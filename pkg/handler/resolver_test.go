// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/treecli/treecli/pkg/argtype"
)

func TestResolveExactKeyBeatsOrigin(t *testing.T) {
	t.Parallel()

	res := NewResolver()
	res.RegisterType("list[int]", TypeHandlerFunc(func(_ *Resolver, name string, hint argtype.TypeHint) (*Rule, error) {
		return &Rule{
			Name:     name,
			TypeName: "csv",
			Arity:    ArityOne,
			Cast:     func(tok string) (any, error) { return strings.Split(tok, ","), nil },
		}, nil
	}))

	exact, err := res.Resolve("xs", argtype.ListOf(argtype.Int))
	if err != nil {
		t.Fatalf("Resolve(list[int]) error = %v", err)
	}
	if exact.TypeName != "csv" {
		t.Errorf("list[int] TypeName = %q, want the exact-key handler", exact.TypeName)
	}

	fallback, err := res.Resolve("xs", argtype.ListOf(argtype.Float))
	if err != nil {
		t.Fatalf("Resolve(list[float]) error = %v", err)
	}
	if fallback.TypeName != "float" || !fallback.IsMulti() {
		t.Errorf("list[float] should fall back to the list handler, got %+v", fallback)
	}
}

func TestResolveUnsupported(t *testing.T) {
	t.Parallel()

	res := NewResolver()

	_, err := res.Resolve("x", argtype.Variadic)
	var typeErr *UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Resolve(...) error = %v, want *UnsupportedTypeError", err)
	}
	if typeErr.Arg != "x" || typeErr.Type != "..." {
		t.Errorf("UnsupportedTypeError = %+v", typeErr)
	}

	if _, err := res.Resolve("x", nil); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Resolve(nil) error = %v, want ErrUnsupportedType", err)
	}

	empty := &Resolver{types: map[string]TypeHandler{}, constraints: map[argtype.ConstraintTag]ConstraintHandler{}}
	_, err = empty.Resolve("x", argtype.Annotate(argtype.Int, argtype.Gt(0)))
	if !errors.Is(err, ErrUnsupportedConstraint) || !errors.Is(err, ErrConfiguration) {
		t.Errorf("Resolve() with no constraint handlers error = %v, want ErrUnsupportedConstraint", err)
	}
}

func TestRegisterConstraintOverride(t *testing.T) {
	t.Parallel()

	res := NewResolver()
	called := false
	res.RegisterConstraint(argtype.TagGt, constraintFunc(func(r *Resolver, name string, base argtype.TypeHint, _ argtype.Constraint) (*Rule, error) {
		called = true
		return r.Resolve(name, base)
	}))

	rule, err := res.Resolve("x", argtype.Annotate(argtype.Int, argtype.Gt(100)))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !called {
		t.Error("custom constraint handler was not used")
	}
	if _, err := rule.Apply([]string{"1"}); err != nil {
		t.Errorf("Apply(1) error = %v, custom handler adds no bound", err)
	}
}

func TestCompatible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  argtype.ConstraintTag
		hint argtype.TypeHint
		want bool
	}{
		{argtype.TagGt, argtype.Int, true},
		{argtype.TagGe, argtype.Float, true},
		{argtype.TagLt, argtype.ListOf(argtype.Int), true},
		{argtype.TagLe, argtype.String, false},
		{argtype.TagInterval, argtype.TupleOf(argtype.Float, argtype.Variadic), true},
		{argtype.TagInterval, argtype.Bool, false},
		{argtype.TagMinLen, argtype.String, true},
		{argtype.TagMaxLen, argtype.Bytes, true},
		{argtype.TagLen, argtype.SetOf(argtype.Path), true},
		{argtype.TagLen, argtype.ListOf(argtype.Int), true},
		{argtype.TagMinLen, argtype.Path, false},
		{argtype.TagMaxLen, argtype.Int, false},
	}

	for _, tt := range tests {
		if got := Compatible(tt.tag, tt.hint); got != tt.want {
			t.Errorf("Compatible(%s, %s) = %v, want %v", tt.tag, tt.hint, got, tt.want)
		}
	}
}

type constraintFunc func(*Resolver, string, argtype.TypeHint, argtype.Constraint) (*Rule, error)

func (f constraintFunc) Build(r *Resolver, name string, base argtype.TypeHint, c argtype.Constraint) (*Rule, error) {
	return f(r, name, base, c)
}
