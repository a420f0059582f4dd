// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/treecli/treecli/pkg/command"
)

type (
	// cobraSurface implements Surface on a cobra command hierarchy.
	cobraSurface struct {
		root    *cobraParser
		parsers []*cobraParser
		// last is written by the RunE of whichever command cobra selects.
		last *Invocation
	}

	cobraParser struct {
		cmd      *cobra.Command
		path     []string
		binding  *Binding
		args     []*boundArg
		children map[string]*cobraParser
	}

	boundArg struct {
		arg   Argument
		value *tokenValue
	}
)

func newCobraSurface(name, short, long, version string, stdout, stderr io.Writer) *cobraSurface {
	s := &cobraSurface{}
	root := &cobra.Command{
		Use:           name,
		Short:         short,
		Long:          long,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	s.root = s.newParser(root, nil)
	return s
}

func (s *cobraSurface) newParser(cmd *cobra.Command, path []string) *cobraParser {
	p := &cobraParser{cmd: cmd, path: path, children: make(map[string]*cobraParser)}
	cmd.RunE = func(*cobra.Command, []string) error {
		inv, err := p.invocation()
		if err != nil {
			return err
		}
		s.last = inv
		return nil
	}
	s.parsers = append(s.parsers, p)
	return p
}

func (p *cobraParser) Path() []string { return slices.Clone(p.path) }

// invocation collects the parsed values of p. Unset arguments take their
// default; required ones were already enforced by cobra.
func (p *cobraParser) invocation() (*Invocation, error) {
	inv := &Invocation{
		Path:     slices.Clone(p.path),
		Selected: len(p.path) > 0 || p.binding != nil,
		Binding:  p.binding,
		parser:   p,
	}
	if p.binding == nil || p.binding.IsBase {
		return inv, nil
	}
	inv.Args = make(command.Args, len(p.args))
	for _, a := range p.args {
		if !a.value.set {
			if a.arg.HasDefault {
				inv.Args[a.arg.Name] = a.arg.Default
			}
			continue
		}
		v, err := a.arg.Rule.Apply(a.value.tokens)
		if err != nil {
			return nil, err
		}
		inv.Args[a.arg.Name] = v
	}
	return inv, nil
}

func (s *cobraSurface) Root() Parser { return s.root }

func (s *cobraSurface) AddSubparser(parent Parser, name, short, long string) Parser {
	pp := parent.(*cobraParser)
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
	}
	pp.cmd.AddCommand(cmd)
	path := append(slices.Clone(pp.path), name)
	child := s.newParser(cmd, path)
	pp.children[name] = child
	return child
}

func (s *cobraSurface) AddArgument(p Parser, arg Argument) error {
	cp := p.(*cobraParser)
	v := &tokenValue{typeName: arg.Rule.TypeName, multi: arg.Rule.IsMulti()}
	f := cp.cmd.Flags().VarPF(v, arg.Name, "", arg.Help)
	// the default is already part of the help text
	f.DefValue = ""
	if arg.Required {
		if err := cp.cmd.MarkFlagRequired(arg.Name); err != nil {
			return fmt.Errorf("mark --%s required: %w", arg.Name, err)
		}
	}
	cp.args = append(cp.args, &boundArg{arg: arg, value: v})
	return nil
}

func (p *cobraParser) lookup(name string) (*boundArg, bool) {
	for _, a := range p.args {
		if a.arg.Name == name {
			return a, true
		}
	}
	return nil, false
}

func (s *cobraSurface) Bind(p Parser, b Binding) {
	p.(*cobraParser).binding = &b
}

// Parse runs cobra on argv. argv must already be prepared.
func (s *cobraSurface) Parse(ctx context.Context, argv []string) (*Invocation, error) {
	s.reset()
	s.root.cmd.SetArgs(argv)
	cmd, err := s.root.cmd.ExecuteContextC(ctx)
	if err != nil {
		name := s.root.cmd.Name()
		if cmd != nil {
			name = cmd.CommandPath()
		}
		return nil, &UsageError{Command: name, Err: err}
	}
	return s.take(), nil
}

// take returns the invocation recorded by the last run, or a handled
// invocation when cobra answered on its own (help, version).
func (s *cobraSurface) take() *Invocation {
	inv := s.last
	s.last = nil
	if inv == nil {
		return &Invocation{Handled: true}
	}
	return inv
}

func (s *cobraSurface) PrintHelp(p Parser) error {
	return p.(*cobraParser).cmd.Help()
}

// reset clears flag state left by a previous parse so an App can run more
// than once.
func (s *cobraSurface) reset() {
	s.last = nil
	for _, p := range s.parsers {
		for _, a := range p.args {
			a.value.reset()
		}
		resetFlags(p.cmd.Flags())
		resetFlags(p.cmd.PersistentFlags())
	}
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if _, ok := f.Value.(*tokenValue); !ok && f.Changed {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}
