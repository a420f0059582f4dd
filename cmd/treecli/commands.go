// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/treecli/treecli/internal/config"
	"github.com/treecli/treecli/pkg/argtype"
	"github.com/treecli/treecli/pkg/cli"
	"github.com/treecli/treecli/pkg/command"
	"github.com/treecli/treecli/pkg/types"
)

// exitNotFound is returned by commands whose lookup came up empty.
const exitNotFound types.ExitCode = 2

// env is what the demo handlers share.
type env struct {
	cfg     *config.Config
	cfgPath string
	out     io.Writer
}

// registrar registers commands until the first error.
type registrar struct {
	tree *command.Tree
	err  error
}

func (r *registrar) base(path string, c command.Command) {
	if r.err == nil {
		p := command.ParsePath(path)
		r.err = cli.RegisterError(p, r.tree.RegisterBase(p, c))
	}
}

func (r *registrar) leaf(path string, c command.Command) {
	if r.err == nil {
		p := command.ParsePath(path)
		r.err = cli.RegisterError(p, r.tree.RegisterLeaf(p, c))
	}
}

func newTree(e *env) (*command.Tree, error) {
	r := &registrar{tree: command.NewTree()}

	r.base("math", command.Command{Short: "Integer and float arithmetic"})
	r.leaf("math add", command.Command{
		Short: "Add two integers",
		Params: []command.Param{
			command.Arg("x", argtype.Annotate(argtype.Int, argtype.Ge(0)), "First operand."),
			command.Arg("y", argtype.Int, "Second operand.").WithDefault(5),
		},
		Run: e.mathAdd,
	})
	r.leaf("math scale", command.Command{
		Short: "Multiply a number by a factor in (0, 100]",
		Params: []command.Param{
			command.Arg("value", argtype.Float, "Value to scale."),
			command.Arg("factor", argtype.Annotate(argtype.Float,
				argtype.Between(argtype.LowerExclusive(0), argtype.UpperInclusive(100))), "Multiplier.").WithDefault("1"),
		},
		Run: e.mathScale,
	})

	r.base("stats", command.Command{Short: "Statistics over lists of numbers"})
	r.leaf("stats sum", command.Command{
		Short: "Sum integers",
		Params: []command.Param{
			command.Arg("values", argtype.ListOf(argtype.Int), "Numbers to add"),
			command.Arg("label", argtype.String, "").WithDefault("total"),
		},
		Run: e.statsSum,
	})
	r.leaf("stats mean", command.Command{
		Short: "Average up to ten numbers",
		Params: []command.Param{
			command.Arg("values", argtype.Annotate(argtype.ListOf(argtype.Float), argtype.MaxLength(10)), "Numbers to average"),
		},
		Run: e.statsMean,
	})
	r.leaf("stats point", command.Command{
		Short: "Print a 2D point",
		Params: []command.Param{
			command.Arg("coords", argtype.Annotate(argtype.TupleOf(argtype.Float, argtype.Variadic), argtype.Length(2)), "X and Y"),
		},
		Run: e.statsPoint,
	})

	r.base("text", command.Command{Short: "String utilities"})
	r.leaf("text echo", command.Command{
		Short: "Join words",
		Params: []command.Param{
			command.Arg("words", argtype.ListOf(argtype.String), "Words to print."),
			command.Arg("sep", argtype.String, "Separator.").WithDefault(" "),
			command.Arg("upper", argtype.Bool, "Print in upper case.").WithDefault(false),
		},
		Run: e.textEcho,
	})
	r.leaf("text match", command.Command{
		Short: "Exit 2 unless word is among the candidates",
		Params: []command.Param{
			command.Arg("word", argtype.String, "Word to look for."),
			command.Arg("among", argtype.SetOf(argtype.String), "Candidates."),
		},
		Run: e.textMatch,
	})
	r.leaf("text count", command.Command{
		Short: "Count the bytes and characters of a short string",
		Params: []command.Param{
			command.Arg("data", argtype.Annotate(argtype.Bytes, argtype.MaxLength(64)), "Text to measure."),
		},
		Run: e.textCount,
	})

	r.base("file", command.Command{Short: "File utilities"})
	r.leaf("file size", command.Command{
		Short: "Print the size of a file",
		Params: []command.Param{
			command.Arg("path", argtype.Path, "File to inspect."),
		},
		Run: e.fileSize,
	})

	cfgDir, err := config.ConfigDir()
	if err != nil {
		cfgDir = "."
	}
	r.base("config", command.Command{Short: "Inspect and create the configuration"})
	r.leaf("config show", command.Command{
		Short: "Print the effective configuration",
		Params: []command.Param{
			command.Arg("format", argtype.String, "Output format, cue or toml.").WithDefault("cue"),
		},
		Run: e.configShow,
	})
	r.leaf("config init", command.Command{
		Short: "Write a default configuration file",
		Params: []command.Param{
			command.Arg("dir", argtype.Path, "Directory to write to.").WithDefault(cfgDir),
		},
		Run: e.configInit,
	})

	if r.err != nil {
		return nil, r.err
	}
	return r.tree, nil
}

func (e *env) mathAdd(_ context.Context, args command.Args) error {
	_, err := fmt.Fprintln(e.out, args.Int("x")+args.Int("y"))
	return err
}

func (e *env) mathScale(_ context.Context, args command.Args) error {
	_, err := fmt.Fprintln(e.out, args.Float("value")*args.Float("factor"))
	return err
}

func (e *env) statsSum(_ context.Context, args command.Args) error {
	values, _ := command.Get[[]int](args, "values")
	total := 0
	for _, v := range values {
		total += v
	}
	_, err := fmt.Fprintf(e.out, "%s: %d\n", args.String("label"), total)
	return err
}

func (e *env) statsMean(_ context.Context, args command.Args) error {
	values, _ := command.Get[[]float64](args, "values")
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	_, err := fmt.Fprintln(e.out, sum/float64(len(values)))
	return err
}

func (e *env) statsPoint(_ context.Context, args command.Args) error {
	p, _ := command.Get[argtype.Tuple[float64]](args, "coords")
	_, err := fmt.Fprintf(e.out, "(%g, %g)\n", p[0], p[1])
	return err
}

func (e *env) textEcho(_ context.Context, args command.Args) error {
	words, _ := command.Get[[]string](args, "words")
	line := strings.Join(words, args.String("sep"))
	if args.Bool("upper") {
		line = strings.ToUpper(line)
	}
	_, err := fmt.Fprintln(e.out, line)
	return err
}

func (e *env) textMatch(_ context.Context, args command.Args) error {
	among, _ := command.Get[argtype.Set[string]](args, "among")
	word := args.String("word")
	if !among.Has(word) {
		return &cli.ExitError{Code: exitNotFound, Err: fmt.Errorf("%q is not among the candidates", word)}
	}
	_, err := fmt.Fprintln(e.out, "found", word)
	return err
}

func (e *env) textCount(_ context.Context, args command.Args) error {
	data := args.Bytes("data")
	_, err := fmt.Fprintf(e.out, "%d bytes, %d characters\n", len(data), utf8.RuneCount(data))
	return err
}

func (e *env) fileSize(_ context.Context, args command.Args) error {
	info, err := os.Stat(args.Path("path").String())
	if err != nil {
		return &cli.ExitError{Code: exitNotFound, Err: err}
	}
	_, err = fmt.Fprintln(e.out, info.Size())
	return err
}

func (e *env) configShow(_ context.Context, args command.Args) error {
	var out string
	switch format := args.String("format"); format {
	case "cue":
		out = config.GenerateCUE(e.cfg)
		if e.cfgPath != "" {
			out = "// loaded from " + e.cfgPath + "\n" + out
		}
	case "toml":
		data, err := config.MarshalTOML(e.cfg)
		if err != nil {
			return err
		}
		out = string(data)
		if e.cfgPath != "" {
			out = "# loaded from " + e.cfgPath + "\n" + out
		}
	default:
		return &cli.ExitError{Code: types.ExitFailure, Err: fmt.Errorf("unknown format %q (valid: cue, toml)", format)}
	}
	_, err := io.WriteString(e.out, out)
	return err
}

func (e *env) configInit(_ context.Context, args command.Args) error {
	path, err := config.WriteDefault(args.Path("dir").String())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, path)
	return err
}
