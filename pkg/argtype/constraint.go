// SPDX-License-Identifier: MPL-2.0

package argtype

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Constraint tags, one per supported annotation.
const (
	TagGt       ConstraintTag = "gt"
	TagGe       ConstraintTag = "ge"
	TagLt       ConstraintTag = "lt"
	TagLe       ConstraintTag = "le"
	TagInterval ConstraintTag = "interval"
	TagMinLen   ConstraintTag = "min_len"
	TagMaxLen   ConstraintTag = "max_len"
	TagLen      ConstraintTag = "len"
)

type (
	// ConstraintTag identifies the kind of a constraint; constraint handlers
	// are registered by tag.
	ConstraintTag string

	// Constraint restricts the values a parameter accepts.
	Constraint interface {
		Tag() ConstraintTag
		String() string
	}

	// GreaterThan requires value > Value.
	GreaterThan struct{ Value float64 }
	// GreaterOrEqual requires value >= Value.
	GreaterOrEqual struct{ Value float64 }
	// LessThan requires value < Value.
	LessThan struct{ Value float64 }
	// LessOrEqual requires value <= Value.
	LessOrEqual struct{ Value float64 }

	// Interval bounds a value from either or both sides. At most one of GT/GE
	// and at most one of LT/LE may be set; nil bounds are open.
	Interval struct {
		GT, GE, LT, LE *float64
	}

	// IntervalOption sets one bound of an Interval.
	IntervalOption func(*Interval)

	// MinLen requires at least N characters, bytes or elements.
	MinLen struct{ N int }
	// MaxLen allows at most N characters, bytes or elements.
	MaxLen struct{ N int }
	// ExactLen requires exactly N characters, bytes or elements.
	ExactLen struct{ N int }
)

// Gt returns a GreaterThan constraint.
func Gt(v float64) GreaterThan { return GreaterThan{Value: v} }

// Ge returns a GreaterOrEqual constraint.
func Ge(v float64) GreaterOrEqual { return GreaterOrEqual{Value: v} }

// Lt returns a LessThan constraint.
func Lt(v float64) LessThan { return LessThan{Value: v} }

// Le returns a LessOrEqual constraint.
func Le(v float64) LessOrEqual { return LessOrEqual{Value: v} }

// MinLength returns a MinLen constraint.
func MinLength(n int) MinLen { return MinLen{N: n} }

// MaxLength returns a MaxLen constraint.
func MaxLength(n int) MaxLen { return MaxLen{N: n} }

// Length returns an ExactLen constraint.
func Length(n int) ExactLen { return ExactLen{N: n} }

// Between builds an Interval from bound options. Conflicting bounds are kept
// as given and rejected when the parameter is compiled.
func Between(opts ...IntervalOption) Interval {
	var iv Interval
	for _, opt := range opts {
		opt(&iv)
	}
	return iv
}

// LowerExclusive sets the gt bound.
func LowerExclusive(v float64) IntervalOption { return func(iv *Interval) { iv.GT = &v } }

// LowerInclusive sets the ge bound.
func LowerInclusive(v float64) IntervalOption { return func(iv *Interval) { iv.GE = &v } }

// UpperExclusive sets the lt bound.
func UpperExclusive(v float64) IntervalOption { return func(iv *Interval) { iv.LT = &v } }

// UpperInclusive sets the le bound.
func UpperInclusive(v float64) IntervalOption { return func(iv *Interval) { iv.LE = &v } }

func (GreaterThan) Tag() ConstraintTag    { return TagGt }
func (GreaterOrEqual) Tag() ConstraintTag { return TagGe }
func (LessThan) Tag() ConstraintTag       { return TagLt }
func (LessOrEqual) Tag() ConstraintTag    { return TagLe }
func (Interval) Tag() ConstraintTag       { return TagInterval }
func (MinLen) Tag() ConstraintTag         { return TagMinLen }
func (MaxLen) Tag() ConstraintTag         { return TagMaxLen }
func (ExactLen) Tag() ConstraintTag       { return TagLen }

func (c GreaterThan) String() string    { return "Gt(" + FormatNumber(c.Value) + ")" }
func (c GreaterOrEqual) String() string { return "Ge(" + FormatNumber(c.Value) + ")" }
func (c LessThan) String() string       { return "Lt(" + FormatNumber(c.Value) + ")" }
func (c LessOrEqual) String() string    { return "Le(" + FormatNumber(c.Value) + ")" }
func (c MinLen) String() string         { return fmt.Sprintf("MinLen(%d)", c.N) }
func (c MaxLen) String() string         { return fmt.Sprintf("MaxLen(%d)", c.N) }
func (c ExactLen) String() string       { return fmt.Sprintf("Len(%d)", c.N) }

func (c Interval) String() string {
	var parts []string
	for _, b := range []struct {
		name string
		v    *float64
	}{{"gt", c.GT}, {"ge", c.GE}, {"lt", c.LT}, {"le", c.LE}} {
		if b.v != nil {
			parts = append(parts, b.name+"="+FormatNumber(*b.v))
		}
	}
	return "Interval(" + strings.Join(parts, ", ") + ")"
}

// FormatNumber renders a threshold the shortest way that round-trips, so
// 10 prints as "10" and 0.5 as "0.5". Whole numbers below 1e21 are never
// printed in exponent form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
