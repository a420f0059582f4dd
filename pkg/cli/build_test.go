// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/treecli/treecli/internal/issue"
	"github.com/treecli/treecli/pkg/argtype"
	"github.com/treecli/treecli/pkg/command"
	"github.com/treecli/treecli/pkg/handler"
	"github.com/treecli/treecli/pkg/types"
)

func noop(context.Context, command.Args) error { return nil }

func singleLeaf(t *testing.T, params ...command.Param) *command.Tree {
	t.Helper()

	tree := command.NewTree()
	mustRegister(t, tree.RegisterBase([]string{"tool"}, command.Command{}))
	mustRegister(t, tree.RegisterLeaf([]string{"tool", "run"}, command.Command{Params: params, Run: noop}))
	return tree
}

func TestBuildConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		param   command.Param
		wantErr error
		wantId  issue.Id
	}{
		{
			name:    "missing type",
			param:   command.Arg("n", nil, ""),
			wantErr: ErrMissingTypeHint,
			wantId:  issue.MissingTypeHintId,
		},
		{
			name:    "nested container",
			param:   command.Arg("n", argtype.ListOf(argtype.ListOf(argtype.Int)), ""),
			wantErr: handler.ErrUnsupportedType,
			wantId:  issue.UnsupportedTypeId,
		},
		{
			name:    "bare list",
			param:   command.Arg("n", argtype.ListOf(), ""),
			wantErr: handler.ErrInvalidContainer,
			wantId:  issue.InvalidContainerId,
		},
		{
			name:    "inequality on string",
			param:   command.Arg("n", argtype.Annotate(argtype.String, argtype.Gt(1)), ""),
			wantErr: handler.ErrInvalidConstraintTarget,
			wantId:  issue.InvalidConstraintId,
		},
		{
			name:    "conflicting interval",
			param:   command.Arg("n", argtype.Annotate(argtype.Int, argtype.Between(argtype.LowerExclusive(1), argtype.LowerInclusive(2))), ""),
			wantErr: handler.ErrInvalidConstraint,
			wantId:  issue.InvalidConstraintId,
		},
		{
			name:    "uncastable string default",
			param:   command.Arg("n", argtype.Int, "").WithDefault("ten"),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "string default breaking the constraint",
			param:   command.Arg("n", argtype.Annotate(argtype.Int, argtype.Ge(0)), "").WithDefault("-3"),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "float default on an int parameter",
			param:   command.Arg("n", argtype.Int, "").WithDefault(2.5),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "slice default on a scalar parameter",
			param:   command.Arg("n", argtype.Float, "").WithDefault([]int{1}),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "typed default breaking the constraint",
			param:   command.Arg("n", argtype.Annotate(argtype.Int, argtype.Ge(0)), "").WithDefault(-3),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "empty default below the minimum length",
			param:   command.Arg("n", argtype.Annotate(argtype.ListOf(argtype.Int), argtype.MinLength(1)), "").WithDefault([]int{}),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
		{
			name:    "container default breaking the element constraint",
			param:   command.Arg("n", argtype.Annotate(argtype.ListOf(argtype.Int), argtype.Lt(10)), "").WithDefault([]int{1, 10}),
			wantErr: ErrInvalidDefault,
			wantId:  issue.InvalidDefaultId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, err := Build(singleLeaf(t, tt.param), WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
			if app != nil {
				t.Error("Build() must not return a partial app")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, handler.ErrConfiguration) {
				t.Errorf("Build() error should be a configuration error: %v", err)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Build() error should be actionable: %T", err)
			}
			if ae.Resource != "tool run --n" {
				t.Errorf("Resource = %q, want %q", ae.Resource, "tool run --n")
			}
			if ae.Issue != tt.wantId || !ae.HasSuggestions() {
				t.Errorf("Issue = %d, suggestions = %v", ae.Issue, ae.Suggestions)
			}
		})
	}
}

func TestBuildCastsStringDefaults(t *testing.T) {
	t.Parallel()

	tree := singleLeaf(t,
		command.Arg("n", argtype.Int, "Count.").WithDefault("10"),
		command.Arg("ratio", argtype.Float, "").WithDefault("0.5"),
		command.Arg("tags", argtype.SetOf(argtype.String), "").WithDefault("a b 'c d'"),
		command.Arg("ids", argtype.ListOf(argtype.Int), "").WithDefault([]int{9}),
	)
	app, err := Build(tree, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	inv, err := app.Parse(context.Background(), []string{"tool", "run"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := command.Args{
		"n":     10,
		"ratio": 0.5,
		"tags":  argtype.NewSet("a", "b", "c d"),
		"ids":   []int{9},
	}
	if diff := cmp.Diff(want, inv.Args); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildConvertsTypedDefaults(t *testing.T) {
	t.Parallel()

	tree := singleLeaf(t,
		command.Arg("factor", argtype.Float, "").WithDefault(5),
		command.Arg("xs", argtype.TupleOf(argtype.Int, argtype.Variadic), "").WithDefault([]int{1, 2}),
		command.Arg("fs", argtype.ListOf(argtype.Float), "").WithDefault([]int{3}),
		command.Arg("ids", argtype.SetOf(argtype.Int), "").WithDefault(argtype.NewSet(4, 5)),
		command.Arg("raw", argtype.Bytes, "").WithDefault([]byte("hi")),
		command.Arg("dir", argtype.Path, "").WithDefault(types.FilesystemPath("/tmp")),
		command.Arg("on", argtype.Bool, "").WithDefault(true),
		command.Arg("opt", argtype.Int, "").WithDefault(nil),
		command.Arg("none", argtype.ListOf(argtype.String), "").WithDefault([]string{}),
	)
	app, err := Build(tree, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	inv, err := app.Parse(context.Background(), []string{"tool", "run"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := command.Args{
		"factor": 5.0,
		"xs":     argtype.Tuple[int]{1, 2},
		"fs":     []float64{3},
		"ids":    argtype.NewSet(4, 5),
		"raw":    []byte("hi"),
		"dir":    types.FilesystemPath("/tmp"),
		"on":     true,
		"opt":    nil,
		"none":   []string{},
	}
	if diff := cmp.Diff(want, inv.Args); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got := inv.Args.Float("factor"); got != 5 {
		t.Errorf("Args.Float(factor) = %v, want 5", got)
	}
	if got, ok := command.Get[argtype.Tuple[int]](inv.Args, "xs"); !ok || len(got) != 2 {
		t.Errorf("Get[Tuple[int]](xs) = %v, %v", got, ok)
	}
}

func TestBuildWithDefaultsOverrides(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	tree := singleLeaf(t,
		command.Arg("n", argtype.Int, "Count.").WithDefault(1),
		command.Arg("xs", argtype.ListOf(argtype.Float), "Points"),
		command.Arg("on", argtype.Bool, "Switch"),
	)
	app, err := Build(tree, WithOutput(&stdout, &bytes.Buffer{}), WithDefaults(map[string]any{
		"tool.run.n":  int64(42),
		"tool.run.xs": []any{1, 2.5},
		"tool.run.on": true,
		"other.param": "ignored",
	}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	inv, err := app.Parse(context.Background(), []string{"tool", "run"})
	if err != nil {
		t.Fatalf("Parse() error = %v, config defaults should make parameters optional", err)
	}
	want := command.Args{"n": 42, "xs": []float64{1, 2.5}, "on": true}
	if diff := cmp.Diff(want, inv.Args); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	app.Run(context.Background(), []string{"tool", "run", "--help"})
	if !strings.Contains(stdout.String(), "Count (default: 42).") {
		t.Errorf("help should show the configured default, got:\n%s", stdout.String())
	}
}

func TestBuildInvalidConfigDefault(t *testing.T) {
	t.Parallel()

	tree := singleLeaf(t, command.Arg("n", argtype.Annotate(argtype.Int, argtype.Le(10)), ""))
	_, err := Build(tree, WithDefaults(map[string]any{"tool.run.n": 11}))
	if !errors.Is(err, ErrInvalidDefault) {
		t.Errorf("Build() error = %v, want ErrInvalidDefault", err)
	}
}

func TestBuildCustomResolver(t *testing.T) {
	t.Parallel()

	res := handler.NewResolver()
	res.RegisterType("str", handler.TypeHandlerFunc(func(_ *handler.Resolver, name string, hint argtype.TypeHint) (*handler.Rule, error) {
		return &handler.Rule{
			Name:     name,
			TypeName: "upper",
			Arity:    handler.ArityOne,
			Cast:     func(tok string) (any, error) { return strings.ToUpper(tok), nil },
		}, nil
	}))

	app, err := Build(singleLeaf(t, command.Arg("word", argtype.String, "")), WithResolver(res),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	inv, err := app.Parse(context.Background(), []string{"tool", "run", "--word", "go"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := inv.Args.String("word"); got != "GO" {
		t.Errorf("word = %q, want custom handler output", got)
	}
}

func TestShortHelpFallbacks(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	tree := command.NewTree()
	mustRegister(t, tree.RegisterBase([]string{"grp", "base"}, command.Command{}))
	mustRegister(t, tree.RegisterLeaf([]string{"grp", "base", "go"}, command.Command{Run: noop}))

	app, err := Build(tree, WithName("prog"), WithOutput(&stdout, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	app.Run(context.Background(), nil)
	if !strings.Contains(stdout.String(), "Commands under grp") {
		t.Errorf("root help should describe the group, got:\n%s", stdout.String())
	}
	stdout.Reset()
	app.Run(context.Background(), []string{"grp"})
	if !strings.Contains(stdout.String(), "Base command for base") {
		t.Errorf("group help should describe the base, got:\n%s", stdout.String())
	}
	stdout.Reset()
	app.Run(context.Background(), []string{"grp", "base"})
	if !strings.Contains(stdout.String(), "Execute go command") {
		t.Errorf("base help should describe the leaf, got:\n%s", stdout.String())
	}
}

func TestBuildIgnoresBaseParams(t *testing.T) {
	t.Parallel()

	var stdout, logs bytes.Buffer
	tree := command.NewTree()
	mustRegister(t, tree.RegisterBase([]string{"grp"}, command.Command{
		Short:  " ",
		Params: []command.Param{command.Arg("x", argtype.Int, "")},
	}))

	app, err := Build(tree, WithName("prog"), WithOutput(&stdout, &bytes.Buffer{}), WithLogger(log.New(&logs)))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(logs.String(), "ignoring parameters of base command") {
		t.Errorf("Build() should log the ignored parameters, got:\n%s", logs.String())
	}

	if code := app.Run(context.Background(), nil); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Base command for grp") {
		t.Errorf("whitespace short help should fall back, got:\n%s", stdout.String())
	}
	if code := app.Run(context.Background(), []string{"grp"}); code != 0 {
		t.Errorf("Run(grp) = %d, want 0", code)
	}
	if _, err := app.Parse(context.Background(), []string{"grp", "--x", "1"}); !errors.Is(err, handler.ErrUserInput) {
		t.Errorf("Parse(grp --x 1) error = %v, want a user input error", err)
	}
}

func TestWithDefaultHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		help, def, want string
	}{
		{"Second operand.", "5", "Second operand (default: 5)."},
		{"Second operand", "5", "Second operand (default: 5)"},
		{"", "5", ""},
	}
	for _, tt := range tests {
		if got := withDefault(tt.help, tt.def); got != tt.want {
			t.Errorf("withDefault(%q, %q) = %q, want %q", tt.help, tt.def, got, tt.want)
		}
	}
}

func TestExplainUnknownError(t *testing.T) {
	t.Parallel()

	id, sugs := Explain(errors.New("other"))
	if id != 0 || sugs != nil {
		t.Errorf("Explain(other) = %d, %v", id, sugs)
	}

	err := RegisterError([]string{"a", "b"}, &command.MissingParentError{Path: []string{"a", "b"}, Prefix: []string{"a"}})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.MissingParentId || ae.Resource != "a b" {
		t.Errorf("RegisterError() = %v", err)
	}
	if RegisterError(nil, nil) != nil {
		t.Error("RegisterError(nil) should be nil")
	}
}
