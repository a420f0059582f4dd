// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"fmt"
	"regexp"

	"github.com/treecli/treecli/pkg/argtype"
	"github.com/treecli/treecli/pkg/types"
)

// paramNamePattern matches names usable as long flags.
var paramNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// reservedParams collide with flags the parser adds itself.
var reservedParams = map[string]bool{"help": true}

type (
	// Handler runs a leaf command with its parsed parameters.
	Handler func(ctx context.Context, args Args) error

	// Command is the declaration registered at a tree path.
	Command struct {
		// Short is the one-line help shown in command listings.
		Short types.DescriptionText
		// Long is the full help shown by the command's own help.
		Long types.DescriptionText
		// Params are exposed as --<name> flags, in declaration order.
		Params []Param
		// Run is required for leaf commands. Base commands ignore Params and Run.
		Run Handler
	}

	// Param declares one parameter of a leaf command. Parameters without a
	// default are required.
	Param struct {
		Name       string
		Type       argtype.TypeHint
		Help       types.DescriptionText
		Default    any
		HasDefault bool
	}
)

// Arg declares a parameter.
func Arg(name string, hint argtype.TypeHint, help string) Param {
	return Param{Name: name, Type: hint, Help: types.DescriptionText(help)}
}

// WithDefault returns p with a default value, which also makes it optional.
// A string default on a non-string parameter is parsed like a command-line
// token when the parser is built.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	p.HasDefault = true
	return p
}

// Required reports whether the parameter must be given.
func (p Param) Required() bool { return !p.HasDefault }

// DefaultString renders the default for help output.
func (p Param) DefaultString() string {
	switch v := p.Default.(type) {
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (c *Command) validate(path []string, kind Kind) error {
	if kind == KindBase {
		return nil
	}
	if err := c.Short.Validate(); err != nil {
		return &InvalidParamError{Path: path, Param: "short help", Reason: err.Error()}
	}
	if err := c.Long.Validate(); err != nil {
		return &InvalidParamError{Path: path, Param: "long help", Reason: err.Error()}
	}
	if c.Run == nil {
		return &MissingHandlerError{Path: path}
	}
	seen := make(map[string]bool, len(c.Params))
	for _, p := range c.Params {
		switch {
		case !paramNamePattern.MatchString(p.Name):
			return &InvalidParamError{Path: path, Param: p.Name, Reason: "must start with a letter and contain only letters, digits, '-' or '_'"}
		case reservedParams[p.Name]:
			return &InvalidParamError{Path: path, Param: p.Name, Reason: "is reserved"}
		case seen[p.Name]:
			return &InvalidParamError{Path: path, Param: p.Name, Reason: "is declared twice"}
		}
		if err := p.Help.Validate(); err != nil {
			return &InvalidParamError{Path: path, Param: p.Name, Reason: err.Error()}
		}
		seen[p.Name] = true
	}
	return nil
}
