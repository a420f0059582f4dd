// SPDX-License-Identifier: MPL-2.0

package handler

import "github.com/treecli/treecli/pkg/argtype"

const (
	// TargetOther is any type no constraint applies to (bool, path, ...).
	TargetOther Target = iota
	// TargetNumeric is an int or float scalar.
	TargetNumeric
	// TargetSized is a str or bytes scalar.
	TargetSized
	// TargetNumericContainer is a container whose elements are int or float.
	TargetNumericContainer
	// TargetContainer is a container of any other scalar.
	TargetContainer
)

// Target classifies a base type for constraint compatibility.
type Target int

// compatibility lists, per constraint tag, the targets it may wrap.
// Inequalities on containers apply element-wise; lengths on containers
// count elements.
var compatibility = map[argtype.ConstraintTag]map[Target]bool{
	argtype.TagGt:       {TargetNumeric: true, TargetNumericContainer: true},
	argtype.TagGe:       {TargetNumeric: true, TargetNumericContainer: true},
	argtype.TagLt:       {TargetNumeric: true, TargetNumericContainer: true},
	argtype.TagLe:       {TargetNumeric: true, TargetNumericContainer: true},
	argtype.TagInterval: {TargetNumeric: true, TargetNumericContainer: true},
	argtype.TagMinLen:   {TargetSized: true, TargetNumericContainer: true, TargetContainer: true},
	argtype.TagMaxLen:   {TargetSized: true, TargetNumericContainer: true, TargetContainer: true},
	argtype.TagLen:      {TargetSized: true, TargetNumericContainer: true, TargetContainer: true},
}

// Classify returns the compatibility target of a base type hint.
func Classify(hint argtype.TypeHint) Target {
	switch h := hint.(type) {
	case argtype.Scalar:
		switch {
		case h.Kind.IsNumeric():
			return TargetNumeric
		case h.Kind.HasLength():
			return TargetSized
		}
	case argtype.Container:
		elem, ok := h.Elem()
		if !ok {
			return TargetContainer
		}
		if k, ok := argtype.ScalarOf(elem); ok && k.IsNumeric() {
			return TargetNumericContainer
		}
		return TargetContainer
	}
	return TargetOther
}

// IsContainer reports whether t is one of the container targets.
func (t Target) IsContainer() bool {
	return t == TargetNumericContainer || t == TargetContainer
}

// Compatible reports whether a constraint with tag may wrap hint.
func Compatible(tag argtype.ConstraintTag, hint argtype.TypeHint) bool {
	return compatibility[tag][Classify(hint)]
}

// checkTarget returns an InvalidConstraintTargetError when c cannot wrap base.
func checkTarget(name string, base argtype.TypeHint, c argtype.Constraint) error {
	if base == nil {
		return &InvalidConstraintTargetError{Arg: name, Constraint: c.String(), Target: "<nil>"}
	}
	if !Compatible(c.Tag(), base) {
		return &InvalidConstraintTargetError{Arg: name, Constraint: c.String(), Target: base.Key()}
	}
	return nil
}
