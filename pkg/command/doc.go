// SPDX-License-Identifier: MPL-2.0

// Package command holds the declarative command tree.
//
// A Tree is a registry of commands addressed by hierarchical paths such as
// ["math", "add"]. Every node is one of three kinds:
//
//   - Group: created implicitly as an ancestor; has no behavior of its own.
//   - Base: a named intermediate command with help text and no handler.
//   - Leaf: an executable command with parameters and a handler.
//
// A leaf can only be registered below a chain of explicitly registered base
// or leaf commands. The tree is written during registration and is
// read-only once handed to the parser builder.
package command
