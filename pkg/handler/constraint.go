// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"cmp"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/treecli/treecli/pkg/argtype"
)

type (
	// ConstraintHandler compiles an annotated type into a Rule. Handlers
	// resolve the base type through the Resolver and add validation to it.
	ConstraintHandler interface {
		Build(res *Resolver, name string, base argtype.TypeHint, c argtype.Constraint) (*Rule, error)
	}

	// InequalityHandler handles one of gt, ge, lt and le.
	InequalityHandler struct {
		Tag argtype.ConstraintTag
	}

	// IntervalHandler handles interval constraints.
	IntervalHandler struct{}

	// LengthHandler handles min_len, max_len and len constraints.
	LengthHandler struct{}

	bound struct {
		op        string
		threshold float64
		holds     func(order int) bool
	}
)

var inequalityOps = map[argtype.ConstraintTag]bound{
	argtype.TagGt: {op: ">", holds: func(order int) bool { return order > 0 }},
	argtype.TagGe: {op: ">=", holds: func(order int) bool { return order >= 0 }},
	argtype.TagLt: {op: "<", holds: func(order int) bool { return order < 0 }},
	argtype.TagLe: {op: "<=", holds: func(order int) bool { return order <= 0 }},
}

// Build implements ConstraintHandler.
func (h *InequalityHandler) Build(res *Resolver, name string, base argtype.TypeHint, c argtype.Constraint) (*Rule, error) {
	b, ok := inequalityOps[h.Tag]
	if !ok || c.Tag() != h.Tag {
		return nil, &UnsupportedConstraintError{Arg: name, Constraint: c.String()}
	}
	switch v := c.(type) {
	case argtype.GreaterThan:
		b.threshold = v.Value
	case argtype.GreaterOrEqual:
		b.threshold = v.Value
	case argtype.LessThan:
		b.threshold = v.Value
	case argtype.LessOrEqual:
		b.threshold = v.Value
	default:
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: fmt.Sprintf("unexpected %T for tag %s", c, h.Tag)}
	}
	return numericRule(res, name, base, c, []bound{b})
}

// Build implements ConstraintHandler. Both sides are optional; gt/ge and
// lt/le are mutually exclusive.
func (IntervalHandler) Build(res *Resolver, name string, base argtype.TypeHint, c argtype.Constraint) (*Rule, error) {
	iv, ok := c.(argtype.Interval)
	if !ok {
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: fmt.Sprintf("unexpected %T for tag interval", c)}
	}
	if iv.GT != nil && iv.GE != nil {
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: "gt and ge are mutually exclusive"}
	}
	if iv.LT != nil && iv.LE != nil {
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: "lt and le are mutually exclusive"}
	}

	var bounds []bound
	for _, side := range []struct {
		tag argtype.ConstraintTag
		v   *float64
	}{{argtype.TagGt, iv.GT}, {argtype.TagGe, iv.GE}, {argtype.TagLt, iv.LT}, {argtype.TagLe, iv.LE}} {
		if side.v == nil {
			continue
		}
		b := inequalityOps[side.tag]
		b.threshold = *side.v
		bounds = append(bounds, b)
	}
	if len(bounds) == 2 && !intervalNonEmpty(bounds[0], bounds[1]) {
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: "lower bound exceeds upper bound"}
	}
	return numericRule(res, name, base, c, bounds)
}

func intervalNonEmpty(lower, upper bound) bool {
	if lower.op == ">=" && upper.op == "<=" {
		return lower.threshold <= upper.threshold
	}
	return lower.threshold < upper.threshold
}

func numericRule(res *Resolver, name string, base argtype.TypeHint, c argtype.Constraint, bounds []bound) (*Rule, error) {
	if err := checkTarget(name, base, c); err != nil {
		return nil, err
	}
	rule, err := res.Resolve(name, base)
	if err != nil {
		return nil, err
	}
	element := Classify(base).IsContainer()
	chain(rule, func(v any) error {
		for _, b := range bounds {
			order, ok := compareTo(v, b.threshold)
			if !ok {
				return &ValidationError{Arg: name, Relation: "be numeric", Value: fmt.Sprintf("%v", v), Element: element}
			}
			if !b.holds(order) {
				return &ValidationError{
					Arg:      name,
					Relation: "be " + b.op + " " + argtype.FormatNumber(b.threshold),
					Value:    fmt.Sprintf("%v", v),
					Element:  element,
				}
			}
		}
		return nil
	})
	return rule, nil
}

// Build implements ConstraintHandler. On str values the length counts
// characters, on bytes it counts bytes and on containers it counts the
// tokens given, before any deduplication.
func (LengthHandler) Build(res *Resolver, name string, base argtype.TypeHint, c argtype.Constraint) (*Rule, error) {
	var (
		n     int
		holds func(got int) bool
		rel   string
	)
	switch v := c.(type) {
	case argtype.MinLen:
		n, rel = v.N, "at least"
		holds = func(got int) bool { return got >= v.N }
	case argtype.MaxLen:
		n, rel = v.N, "at most"
		holds = func(got int) bool { return got <= v.N }
	case argtype.ExactLen:
		n, rel = v.N, "exactly"
		holds = func(got int) bool { return got == v.N }
	default:
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: fmt.Sprintf("unexpected %T for a length tag", c)}
	}
	if n < 0 {
		return nil, &InvalidConstraintError{Arg: name, Constraint: c.String(), Reason: "length must not be negative"}
	}
	if err := checkTarget(name, base, c); err != nil {
		return nil, err
	}
	rule, err := res.Resolve(name, base)
	if err != nil {
		return nil, err
	}

	if Classify(base).IsContainer() {
		prev := rule.CheckCount
		rule.CheckCount = func(got int) error {
			if prev != nil {
				if err := prev(got); err != nil {
					return err
				}
			}
			if !holds(got) {
				return &ValidationError{Arg: name, Relation: fmt.Sprintf("have %s %s", rel, plural(n, "element")), Value: plural(got, "element")}
			}
			return nil
		}
		return rule, nil
	}

	chain(rule, func(v any) error {
		var got int
		unit := "character"
		switch s := v.(type) {
		case string:
			got = utf8.RuneCountInString(s)
		case []byte:
			got, unit = len(s), "byte"
		default:
			return &ValidationError{Arg: name, Relation: "have a length", Value: fmt.Sprintf("%v", v)}
		}
		if !holds(got) {
			return &ValidationError{Arg: name, Relation: fmt.Sprintf("have %s %s", rel, plural(n, unit)), Value: plural(got, unit)}
		}
		return nil
	})
	return rule, nil
}

// chain appends check to the rule's per-value validation.
func chain(rule *Rule, check func(any) error) {
	prev := rule.Validate
	if prev == nil {
		rule.Validate = check
		return
	}
	rule.Validate = func(v any) error {
		if err := prev(v); err != nil {
			return err
		}
		return check(v)
	}
}

// compareTo orders v against t. Integers are compared exactly when t is a
// whole number that fits in an int64, and as float64 otherwise.
func compareTo(v any, t float64) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	case float64:
		return cmp.Compare(x, t), true
	case float32:
		return cmp.Compare(float64(x), t), true
	default:
		return 0, false
	}
	if t == math.Trunc(t) && t >= -(1<<63) && t < 1<<63 {
		return cmp.Compare(n, int64(t)), true
	}
	return cmp.Compare(float64(n), t), true
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
