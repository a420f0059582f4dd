// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"strconv"
	"strings"

	"github.com/treecli/treecli/pkg/argtype"
	"github.com/treecli/treecli/pkg/types"
)

type (
	// TypeHandler compiles a type hint into a Rule.
	TypeHandler interface {
		Build(res *Resolver, name string, hint argtype.TypeHint) (*Rule, error)
	}

	// TypeHandlerFunc adapts a function to TypeHandler.
	TypeHandlerFunc func(res *Resolver, name string, hint argtype.TypeHint) (*Rule, error)

	// Caster is implemented by type handlers that convert a single token.
	// Container handlers require their element handler to be a Caster.
	Caster interface {
		Cast(token string) (any, error)
	}

	// ScalarHandler handles one scalar kind.
	ScalarHandler struct {
		Kind argtype.ScalarKind
		cast func(token string) (any, error)
	}
)

// Build implements TypeHandler.
func (f TypeHandlerFunc) Build(res *Resolver, name string, hint argtype.TypeHint) (*Rule, error) {
	return f(res, name, hint)
}

// NewScalarHandler returns the built-in handler for kind.
func NewScalarHandler(kind argtype.ScalarKind) (*ScalarHandler, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	h := &ScalarHandler{Kind: kind}
	switch kind {
	case argtype.KindInt:
		h.cast = castInt
	case argtype.KindFloat:
		h.cast = castFloat
	case argtype.KindString:
		h.cast = func(tok string) (any, error) { return tok, nil }
	case argtype.KindBool:
		h.cast = castBool
	case argtype.KindBytes:
		h.cast = func(tok string) (any, error) { return []byte(tok), nil }
	case argtype.KindPath:
		h.cast = func(tok string) (any, error) { return types.FilesystemPath(tok), nil }
	}
	return h, nil
}

// Cast converts one token to the handler's kind.
func (h *ScalarHandler) Cast(token string) (any, error) { return h.cast(token) }

// Build returns a single-token rule.
func (h *ScalarHandler) Build(_ *Resolver, name string, hint argtype.TypeHint) (*Rule, error) {
	return &Rule{
		Name:     name,
		TypeName: hint.Key(),
		Arity:    ArityOne,
		Cast:     h.Cast,
	}, nil
}

func castInt(tok string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return nil, &CastError{Kind: argtype.KindInt, Token: tok, Err: err}
	}
	return n, nil
}

func castFloat(tok string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return nil, &CastError{Kind: argtype.KindFloat, Token: tok, Err: err}
	}
	return f, nil
}

// ParseBool accepts true/t/yes/1 and false/f/no/0, case-insensitively.
func ParseBool(tok string) (bool, error) {
	switch strings.ToLower(tok) {
	case "true", "t", "yes", "1":
		return true, nil
	case "false", "f", "no", "0":
		return false, nil
	default:
		return false, &InvalidBooleanError{Token: tok}
	}
}

func castBool(tok string) (any, error) {
	b, err := ParseBool(tok)
	if err != nil {
		return nil, err
	}
	return b, nil
}
