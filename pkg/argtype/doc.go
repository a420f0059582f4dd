// SPDX-License-Identifier: MPL-2.0

// Package argtype describes the declared type of a command parameter.
//
// A TypeHint is a closed sum type: a Scalar (int, float, str, bool, bytes,
// path), a Container of scalar elements (list, tuple, set), the Ellipsis
// marker used for variadic tuples, or an Annotated hint that wraps a base
// type in exactly one Constraint (inequality, interval or length).
//
// Hints are plain values. They carry no parsing logic; the handler package
// compiles them into parsing and validation rules.
//
//	argtype.Annotate(argtype.Int, argtype.Ge(0))            // non-negative int
//	argtype.ListOf(argtype.Float)                           // one or more floats
//	argtype.Annotate(argtype.ListOf(argtype.Int), argtype.Length(3))
package argtype
