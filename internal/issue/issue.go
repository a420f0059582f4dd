// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingParentId Id = iota + 1
	InvalidCommandPathId
	MissingHandlerId
	InvalidParameterId
	MissingTypeHintId
	UnsupportedTypeId
	UnsupportedConstraintId
	InvalidConstraintId
	InvalidContainerId
	InvalidDefaultId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal Markdown using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	missingParentIssue = &Issue{
		id: MissingParentId,
		mdMsg: `
# Parent command not registered!

A leaf command was registered below a path that has no base command.
Every prefix of a leaf path must be registered first.

## Things you can try:
- Register the parent as a base command before the leaf:
~~~go
tree.RegisterBase(command.ParsePath("math"), command.Command{Short: "Math commands"})
tree.RegisterLeaf(command.ParsePath("math add"), addCommand)
~~~`,
	}

	invalidCommandPathIssue = &Issue{
		id: InvalidCommandPathId,
		mdMsg: `
# Invalid command path!

Each path segment becomes a subcommand name, so it must be a single word.

## Rules:
- Segments must not be empty
- Segments must not contain whitespace
- Segments must not start with '-'`,
	}

	missingHandlerIssue = &Issue{
		id: MissingHandlerId,
		mdMsg: `
# Command has no handler!

Leaf commands are executable and need a ` + "`Run`" + ` function.

## Things you can try:
- Set ` + "`Run`" + ` on the command
- Register the path with ` + "`RegisterBase`" + ` if it only groups other commands`,
	}

	invalidParameterIssue = &Issue{
		id: InvalidParameterId,
		mdMsg: `
# Invalid parameter declaration!

Parameters become long flags (` + "`--name`" + `).

## Rules:
- Names start with a letter and contain only letters, digits, '-' or '_'
- Names are unique within a command
- ` + "`help`" + ` is reserved
- Help text may be empty but not whitespace-only`,
	}

	missingTypeHintIssue = &Issue{
		id: MissingTypeHintId,
		mdMsg: `
# Missing type!

Every parameter needs an explicit type so the parser knows how to read it.

## Example:
~~~go
command.Arg("count", argtype.Int, "How many times")
~~~`,
	}

	unsupportedTypeIssue = &Issue{
		id: UnsupportedTypeId,
		mdMsg: `
# Unsupported type!

No handler is registered for this type.

## Supported types:
- Scalars: int, float, str, bool, bytes, path
- Containers of one scalar type: list[T], tuple[T], tuple[T, ...], set[T]

Nested containers are not supported. Register a custom handler with
` + "`Resolver.RegisterType`" + ` for anything else.`,
	}

	unsupportedConstraintIssue = &Issue{
		id: UnsupportedConstraintId,
		mdMsg: `
# Unsupported constraint!

No handler is registered for this constraint.

## Supported constraints:
- Gt, Ge, Lt, Le and Interval on int, float and numeric containers
- MinLen, MaxLen and Len on str, bytes and containers`,
	}

	invalidConstraintIssue = &Issue{
		id: InvalidConstraintId,
		mdMsg: `
# Invalid constraint!

The constraint cannot be applied as declared.

## Common causes:
- An interval with both a strict and an inclusive bound on the same side
- An interval whose lower bound exceeds its upper bound
- A negative length
- An inequality on a non-numeric type or a length on a number`,
	}

	invalidContainerIssue = &Issue{
		id: InvalidContainerId,
		mdMsg: `
# Invalid container type!

Containers need exactly one element type.

## Things you can try:
- Declare the element type: ` + "`argtype.ListOf(argtype.Int)`" + `
- Use the same element type throughout a tuple
- Only put ` + "`argtype.Variadic`" + ` last in a tuple
- Use a list instead of a set for bytes elements`,
	}

	invalidDefaultIssue = &Issue{
		id: InvalidDefaultId,
		mdMsg: `
# Invalid default value!

A string default on a non-string parameter is parsed like a command-line
value, and that failed.

## Things you can try:
- Use a default of the parameter's Go type
- Make sure the default satisfies the parameter's constraint`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or did not match the schema.

## Things you can try:
- Check the file for syntax errors
- Point ` + "`TREECLI_CONFIG`" + ` at a different file
- Remove the file to fall back to defaults

## Example config.cue:
~~~cue
log_level: "info"
ui: verbose: false
defaults: {
	"math.add.y": 5
}
~~~`,
	}

	issues = map[Id]*Issue{
		missingParentIssue.Id():         missingParentIssue,
		invalidCommandPathIssue.Id():    invalidCommandPathIssue,
		missingHandlerIssue.Id():        missingHandlerIssue,
		invalidParameterIssue.Id():      invalidParameterIssue,
		missingTypeHintIssue.Id():       missingTypeHintIssue,
		unsupportedTypeIssue.Id():       unsupportedTypeIssue,
		unsupportedConstraintIssue.Id(): unsupportedConstraintIssue,
		invalidConstraintIssue.Id():     invalidConstraintIssue,
		invalidContainerIssue.Id():      invalidContainerIssue,
		invalidDefaultIssue.Id():        invalidDefaultIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
