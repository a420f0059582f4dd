// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"

	"github.com/treecli/treecli/pkg/command"
	"github.com/treecli/treecli/pkg/handler"
)

type (
	// Surface is the argument-parsing capability the builder targets.
	Surface interface {
		// Root returns the top-level parser.
		Root() Parser
		// AddSubparser adds a named subcommand below parent.
		AddSubparser(parent Parser, name, short, long string) Parser
		// AddArgument registers a long flag on p.
		AddArgument(p Parser, arg Argument) error
		// Bind attaches behavior to p.
		Bind(p Parser, b Binding)
		// Parse reads argv and reports the selected parser and its values.
		Parse(ctx context.Context, argv []string) (*Invocation, error)
		// PrintHelp writes p's help to the surface output.
		PrintHelp(p Parser) error
	}

	// Parser is an opaque handle to one parser of a Surface.
	Parser interface {
		Path() []string
	}

	// Argument is one compiled parameter.
	Argument struct {
		Name string
		// Help already includes the default, if any.
		Help string
		Rule *handler.Rule
		// Required arguments have no default.
		Required   bool
		Default    any
		HasDefault bool
	}

	// Binding is the behavior attached to a parser. Group parsers have none.
	Binding struct {
		Command *command.Command
		Path    []string
		IsBase  bool
	}

	// Invocation is the outcome of a successful Parse.
	Invocation struct {
		// Path is the selected command path; empty when nothing was selected.
		Path []string
		// Selected is false when argv named no subcommand and the root has
		// no behavior of its own.
		Selected bool
		// Handled is set when the parser already produced output, such as
		// --help or --version.
		Handled bool
		// Binding is nil for groups.
		Binding *Binding
		// Args holds the declared parameters of a leaf and nothing else.
		Args command.Args

		parser Parser
	}
)
