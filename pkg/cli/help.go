// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/treecli/treecli/pkg/command"
)

// withDefault appends the default to non-empty help, keeping a trailing
// period at the very end: "Second operand." becomes
// "Second operand (default: 5).".
func withDefault(help, def string) string {
	if help == "" {
		return help
	}
	base, period := help, ""
	if strings.HasSuffix(base, ".") {
		base, period = strings.TrimSuffix(base, "."), "."
	}
	return fmt.Sprintf("%s (default: %s)%s", base, def, period)
}

// shortHelp returns the node's one-line help, falling back to a generic
// description per kind.
func shortHelp(n *command.Node) string {
	if c := n.Command(); c != nil && strings.TrimSpace(c.Short.String()) != "" {
		return c.Short.String()
	}
	switch n.Kind() {
	case command.KindLeaf:
		return fmt.Sprintf("Execute %s command", n.Name())
	case command.KindBase:
		return fmt.Sprintf("Base command for %s", n.Name())
	default:
		return fmt.Sprintf("Commands under %s", n.Name())
	}
}

func longHelp(n *command.Node) string {
	if c := n.Command(); c != nil && strings.TrimSpace(c.Long.String()) != "" {
		return c.Long.String()
	}
	return ""
}
