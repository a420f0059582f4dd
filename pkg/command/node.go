// SPDX-License-Identifier: MPL-2.0

package command

import "slices"

const (
	// KindGroup is an implicit ancestor with no behavior.
	KindGroup Kind = "group"
	// KindBase is a named intermediate command without a handler.
	KindBase Kind = "base"
	// KindLeaf is an executable command.
	KindLeaf Kind = "leaf"
)

type (
	// Kind is the role of a node in the tree.
	Kind string

	// Node is one position in the command tree.
	Node struct {
		name     string
		kind     Kind
		command  *Command
		parent   *Node
		children map[string]*Node
		order    []string
	}
)

func (k Kind) String() string { return string(k) }

func newNode(name string, parent *Node) *Node {
	return &Node{name: name, kind: KindGroup, parent: parent, children: make(map[string]*Node)}
}

// Name returns the last path segment, or "" for the root.
func (n *Node) Name() string { return n.name }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Command returns the registered command, nil for group nodes.
func (n *Node) Command() *Command { return n.command }

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Path returns the segments from the root to n.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// Child returns the child called name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// child returns the child called name, creating a group node if needed.
func (n *Node) child(name string) *Node {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := newNode(name, n)
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}
