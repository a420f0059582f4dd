// SPDX-License-Identifier: MPL-2.0

// Package handler compiles parameter type hints into parsing and validation
// rules.
//
// A Resolver holds two handler tables: type handlers keyed by annotation key
// (exact key first, origin second, so "list" serves every "list[T]") and
// constraint handlers keyed by constraint tag. Resolve picks the handler and
// returns a Rule: a per-token cast, an arity, an optional per-value
// validation, an optional raw token count check and an optional container
// constructor.
//
// Errors come in two channels. Resolve returns configuration errors, which
// wrap ErrConfiguration and mean the command declaration is wrong. Rule.Apply
// returns user input errors, which wrap ErrUserInput and mean the invocation
// is wrong.
package handler
