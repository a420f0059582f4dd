// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/treecli/treecli/internal/issue"
	"github.com/treecli/treecli/pkg/command"
	"github.com/treecli/treecli/pkg/handler"
)

// App is a built command-line program.
type App struct {
	tree    *command.Tree
	surface *cobraSurface
	opts    options
}

// Build derives the parser for every command in tree. Any declaration error
// aborts the whole build and is returned as an *issue.ActionableError
// wrapping the typed cause.
func Build(tree *command.Tree, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = handler.NewResolver()
	}

	if root := tree.Root().Command(); root != nil {
		if o.short == "" {
			o.short = root.Short.String()
		}
		if o.description == "" {
			o.description = root.Long.String()
		}
	}
	long := o.description
	if o.epilog != "" {
		long = strings.TrimSpace(long + "\n\n" + o.epilog)
	}
	app := &App{
		tree:    tree,
		surface: newCobraSurface(o.name, o.short, long, o.version, o.stdout, o.stderr),
		opts:    o,
	}
	if err := app.register(app.surface); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) register(s Surface) error {
	parsers := make(map[string]Parser)
	return a.tree.Walk(func(n *command.Node) error {
		path := n.Path()
		var p Parser
		if n.IsRoot() {
			p = s.Root()
		} else {
			parent := parsers[pathKey(path[:len(path)-1])]
			p = s.AddSubparser(parent, n.Name(), shortHelp(n), longHelp(n))
		}
		parsers[pathKey(path)] = p
		a.opts.logger.Debug("registered command", "path", displayPath(path), "kind", n.Kind())

		switch n.Kind() {
		case command.KindBase:
			if params := n.Command().Params; len(params) > 0 {
				a.opts.logger.Warn("ignoring parameters of base command", "path", displayPath(path), "count", len(params))
			}
			s.Bind(p, Binding{Command: n.Command(), Path: path, IsBase: true})
		case command.KindLeaf:
			cmd := n.Command()
			for _, param := range cmd.Params {
				arg, err := a.compile(path, param)
				if err != nil {
					return buildError(path, param.Name, err)
				}
				if err := s.AddArgument(p, arg); err != nil {
					return buildError(path, param.Name, err)
				}
				a.opts.logger.Debug("registered argument", "path", displayPath(path), "name", param.Name,
					"type", arg.Rule.TypeName, "required", arg.Required)
			}
			s.Bind(p, Binding{Command: cmd, Path: path})
		}
		return nil
	})
}

// compile turns a parameter declaration into an Argument.
func (a *App) compile(path []string, p command.Param) (Argument, error) {
	if p.Type == nil {
		return Argument{}, &MissingTypeHintError{Path: path, Param: p.Name}
	}
	rule, err := a.opts.resolver.Resolve(p.Name, p.Type)
	if err != nil {
		return Argument{}, err
	}

	arg := Argument{Name: p.Name, Help: p.Help.String(), Rule: rule, Required: true}

	raw, has := p.Default, p.HasDefault
	if v, ok := a.opts.defaults[DefaultKey(path, p.Name)]; ok {
		raw, has = v, true
	}
	if !has {
		return arg, nil
	}

	var value any
	if raw != nil {
		tokens := defaultTokens(raw, rule.IsMulti())
		if rule.IsMulti() && len(tokens) == 0 {
			value, err = emptyDefault(rule)
		} else {
			value, err = rule.Apply(tokens)
		}
		if err != nil {
			return Argument{}, &InvalidDefaultError{Path: path, Param: p.Name, Default: raw, Err: err}
		}
	}
	arg.Required = false
	arg.Default = value
	arg.HasDefault = true
	arg.Help = withDefault(arg.Help, p.WithDefault(raw).DefaultString())
	return arg, nil
}

// DefaultKey is the WithDefaults key for a parameter: path segments and the
// parameter name joined by dots.
func DefaultKey(path []string, param string) string {
	return strings.Join(append(append([]string(nil), path...), param), ".")
}

// defaultTokens renders a default back to the command-line tokens it stands
// for, so every default leaves the rule with the parameter's Go type and
// satisfies its constraint. Strings on multi-value parameters are split like
// a shell would; slices, arrays and sets give one token per element.
func defaultTokens(raw any, multi bool) []string {
	switch v := raw.(type) {
	case string:
		if !multi {
			return []string{v}
		}
		fields, err := shell.Fields(v, func(string) string { return "" })
		if err != nil {
			return []string{v}
		}
		return fields
	case []byte:
		return []string{string(v)}
	case []string:
		return v
	}
	rv := reflect.ValueOf(raw)
	if multi {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			tokens := make([]string, rv.Len())
			for i := range tokens {
				tokens[i] = defaultToken(rv.Index(i).Interface())
			}
			return tokens
		case reflect.Map:
			tokens := make([]string, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				tokens = append(tokens, defaultToken(k.Interface()))
			}
			slices.Sort(tokens)
			return tokens
		}
	}
	return []string{defaultToken(raw)}
}

// emptyDefault builds the empty container an empty slice or set default
// stands for. Length constraints still apply.
func emptyDefault(rule *handler.Rule) (any, error) {
	if rule.CheckCount != nil {
		if err := rule.CheckCount(0); err != nil {
			return nil, err
		}
	}
	if rule.Wrap == nil {
		return []any{}, nil
	}
	return rule.Wrap(nil)
}

func defaultToken(v any) string {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func pathKey(path []string) string { return strings.Join(path, "\x00") }

// buildError wraps a declaration error with the command and parameter it
// came from plus guidance for the author.
func buildError(path []string, param string, err error) error {
	resource := displayPath(path)
	if param != "" {
		resource += " --" + param
	}
	id, suggestions := Explain(err)
	return issue.NewErrorContext().
		WithOperation("build parser").
		WithResource(resource).
		WithIssue(id).
		WithSuggestions(suggestions...).
		Wrap(err).
		BuildError()
}

// Explain maps a configuration error to its issue catalog entry and short
// suggestions. Unknown errors map to zero and no suggestions.
func Explain(err error) (issue.Id, []string) {
	switch {
	case errors.Is(err, command.ErrMissingParent):
		return issue.MissingParentId, []string{"Register the parent path with RegisterBase before the leaf"}
	case errors.Is(err, command.ErrInvalidPath):
		return issue.InvalidCommandPathId, []string{"Use single words that do not start with '-'"}
	case errors.Is(err, command.ErrMissingHandler):
		return issue.MissingHandlerId, []string{"Set Run on the command, or register it with RegisterBase"}
	case errors.Is(err, command.ErrInvalidParam):
		return issue.InvalidParameterId, []string{"Rename the parameter or fix its help text"}
	case errors.Is(err, ErrMissingTypeHint):
		return issue.MissingTypeHintId, []string{"Declare the type, e.g. command.Arg(\"n\", argtype.Int, \"...\")"}
	case errors.Is(err, ErrInvalidDefault):
		return issue.InvalidDefaultId, []string{"Use a default of the parameter's type that satisfies its constraint"}
	case errors.Is(err, handler.ErrInvalidContainer):
		return issue.InvalidContainerId, []string{"Declare one scalar element type, e.g. argtype.ListOf(argtype.Int)"}
	case errors.Is(err, handler.ErrUnsupportedType):
		return issue.UnsupportedTypeId, []string{"Use a scalar or a container of one scalar type", "Register a custom handler with Resolver.RegisterType"}
	case errors.Is(err, handler.ErrUnsupportedConstraint):
		return issue.UnsupportedConstraintId, []string{"Register a handler with Resolver.RegisterConstraint"}
	case errors.Is(err, handler.ErrInvalidConstraintTarget), errors.Is(err, handler.ErrInvalidConstraint):
		return issue.InvalidConstraintId, []string{"Check the constraint bounds and the type it wraps"}
	default:
		return 0, nil
	}
}

// RegisterError wraps a tree registration error the same way Build wraps
// its own errors.
func RegisterError(path []string, err error) error {
	if err == nil {
		return nil
	}
	id, suggestions := Explain(err)
	return issue.NewErrorContext().
		WithOperation("register command").
		WithResource(displayPath(path)).
		WithIssue(id).
		WithSuggestions(suggestions...).
		Wrap(err).
		BuildError()
}
