// SPDX-License-Identifier: MPL-2.0

package handler

import "fmt"

const (
	// ArityOne consumes exactly one token.
	ArityOne Arity = iota
	// ArityOneOrMore consumes one or more tokens.
	ArityOneOrMore
)

type (
	// Arity is the number of tokens a rule consumes.
	Arity int

	// Rule turns the raw tokens of one argument into a typed, validated value.
	Rule struct {
		// Name is the argument the rule was compiled for.
		Name string
		// TypeName is shown as the flag's value placeholder in help output.
		TypeName string
		// Arity is ArityOne for scalars and ArityOneOrMore for containers.
		Arity Arity
		// Cast converts a single token.
		Cast func(token string) (any, error)
		// Validate checks a single cast value (each element for containers).
		Validate func(v any) error
		// CheckCount checks the number of raw tokens before any cast.
		CheckCount func(n int) error
		// Wrap builds the container value from cast elements.
		Wrap func(items []any) (any, error)
	}
)

// IsMulti reports whether the rule accepts more than one token.
func (r *Rule) IsMulti() bool { return r.Arity == ArityOneOrMore }

// Apply runs the count check, casts and validates every token, then wraps
// the elements for container rules. The first failure aborts the whole
// argument.
func (r *Rule) Apply(tokens []string) (any, error) {
	switch {
	case r.Arity == ArityOne && len(tokens) != 1:
		return nil, &ValidationError{Arg: r.Name, Relation: "be given exactly one value", Value: fmt.Sprintf("%d values", len(tokens))}
	case r.Arity == ArityOneOrMore && len(tokens) == 0:
		return nil, &ValidationError{Arg: r.Name, Relation: "be given at least one value", Value: "none"}
	}

	if r.CheckCount != nil {
		if err := r.CheckCount(len(tokens)); err != nil {
			return nil, err
		}
	}

	items := make([]any, len(tokens))
	for i, tok := range tokens {
		v, err := r.Cast(tok)
		if err != nil {
			return nil, &ArgumentError{Arg: r.Name, Err: err}
		}
		if r.Validate != nil {
			if err := r.Validate(v); err != nil {
				return nil, err
			}
		}
		items[i] = v
	}

	if r.Arity == ArityOne {
		return items[0], nil
	}
	if r.Wrap == nil {
		return items, nil
	}
	return r.Wrap(items)
}
