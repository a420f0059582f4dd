// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"
	"unicode"
)

// Tree is a registry of commands.
type Tree struct {
	root *Node
}

// NewTree returns an empty tree whose root is a group.
func NewTree() *Tree {
	return &Tree{root: newNode("", nil)}
}

// ParsePath splits a space-separated command name ("math add") into path
// segments.
func ParsePath(s string) []string {
	return strings.Fields(s)
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// RegisterBase places a base command at path, creating missing ancestors as
// groups. Registering twice overwrites the command and keeps the children.
// Only the path is checked: a base command only shows help, so its Params
// and Run are ignored.
func (t *Tree) RegisterBase(path []string, cmd Command) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := cmd.validate(path, KindBase); err != nil {
		return err
	}
	n := t.ensure(path)
	n.kind = KindBase
	n.command = &cmd
	return nil
}

// RegisterLeaf places an executable command at path. Every proper non-empty
// prefix of path must already be a base or leaf command. An empty path makes
// the root itself executable.
func (t *Tree) RegisterLeaf(path []string, cmd Command) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := cmd.validate(path, KindLeaf); err != nil {
		return err
	}
	cur := t.root
	for i := 0; i < len(path)-1; i++ {
		next, ok := cur.Child(path[i])
		if !ok || next.kind == KindGroup {
			return &MissingParentError{Path: path, Prefix: path[:i+1]}
		}
		cur = next
	}
	n := t.ensure(path)
	n.kind = KindLeaf
	n.command = &cmd
	return nil
}

// Lookup returns the node at path.
func (t *Tree) Lookup(path []string) (*Node, bool) {
	cur := t.root
	for _, seg := range path {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk visits every node depth-first, parents before children, siblings in
// insertion order. A non-nil error from fn stops the walk.
func (t *Tree) Walk(fn func(n *Node) error) error {
	return walk(t.root, fn)
}

func walk(n *Node, fn func(n *Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) ensure(path []string) *Node {
	cur := t.root
	for _, seg := range path {
		cur = cur.child(seg)
	}
	return cur
}

func validatePath(path []string) error {
	for _, seg := range path {
		switch {
		case seg == "":
			return &InvalidPathError{Path: path, Segment: seg, Reason: "is empty"}
		case strings.HasPrefix(seg, "-"):
			return &InvalidPathError{Path: path, Segment: seg, Reason: "must not start with '-'"}
		case strings.IndexFunc(seg, unicode.IsSpace) >= 0:
			return &InvalidPathError{Path: path, Segment: seg, Reason: "must not contain whitespace"}
		}
	}
	return nil
}
