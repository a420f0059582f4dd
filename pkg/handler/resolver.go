// SPDX-License-Identifier: MPL-2.0

package handler

import "github.com/treecli/treecli/pkg/argtype"

// Resolver maps type hints to rules through its handler tables.
type Resolver struct {
	types       map[string]TypeHandler
	constraints map[argtype.ConstraintTag]ConstraintHandler
}

// NewResolver returns a Resolver with every built-in handler registered.
func NewResolver() *Resolver {
	r := &Resolver{
		types:       make(map[string]TypeHandler),
		constraints: make(map[argtype.ConstraintTag]ConstraintHandler),
	}
	for _, k := range []argtype.ScalarKind{
		argtype.KindInt, argtype.KindFloat, argtype.KindString,
		argtype.KindBool, argtype.KindBytes, argtype.KindPath,
	} {
		h, _ := NewScalarHandler(k)
		r.types[string(k)] = h
	}
	for _, k := range []argtype.ContainerKind{argtype.KindList, argtype.KindTuple, argtype.KindSet} {
		r.types[string(k)] = &ContainerHandler{Kind: k}
	}
	for _, tag := range []argtype.ConstraintTag{argtype.TagGt, argtype.TagGe, argtype.TagLt, argtype.TagLe} {
		r.constraints[tag] = &InequalityHandler{Tag: tag}
	}
	r.constraints[argtype.TagInterval] = IntervalHandler{}
	for _, tag := range []argtype.ConstraintTag{argtype.TagMinLen, argtype.TagMaxLen, argtype.TagLen} {
		r.constraints[tag] = LengthHandler{}
	}
	return r
}

// RegisterType sets the handler for an annotation key. Exact keys such as
// "list[int]" take precedence over origin keys such as "list".
func (r *Resolver) RegisterType(key string, h TypeHandler) {
	r.types[key] = h
}

// RegisterConstraint sets the handler for a constraint tag.
func (r *Resolver) RegisterConstraint(tag argtype.ConstraintTag, h ConstraintHandler) {
	r.constraints[tag] = h
}

// Resolve compiles the hint of parameter name into a Rule.
func (r *Resolver) Resolve(name string, hint argtype.TypeHint) (*Rule, error) {
	if hint == nil {
		return nil, &UnsupportedTypeError{Arg: name, Type: "<nil>"}
	}
	if a, ok := hint.(argtype.Annotated); ok {
		if a.Constraint == nil {
			return nil, &UnsupportedConstraintError{Arg: name, Constraint: "<nil>"}
		}
		ch, ok := r.constraints[a.Constraint.Tag()]
		if !ok {
			return nil, &UnsupportedConstraintError{Arg: name, Constraint: a.Constraint.String()}
		}
		return ch.Build(r, name, a.Base, a.Constraint)
	}

	h, ok := r.lookupType(hint)
	if !ok {
		return nil, &UnsupportedTypeError{Arg: name, Type: hint.Key()}
	}
	return h.Build(r, name, hint)
}

func (r *Resolver) lookupType(hint argtype.TypeHint) (TypeHandler, bool) {
	if h, ok := r.types[hint.Key()]; ok {
		return h, true
	}
	h, ok := r.types[hint.Origin()]
	return h, ok
}
