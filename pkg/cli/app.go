// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/treecli/treecli/internal/issue"
	"github.com/treecli/treecli/pkg/types"
)

// Surface returns the parser surface the app was built on.
func (a *App) Surface() Surface { return a.surface }

// Parse reads argv without running anything. Errors are *UsageError.
func (a *App) Parse(ctx context.Context, argv []string) (*Invocation, error) {
	prepared, err := a.prepare(argv)
	if err != nil {
		return nil, &UsageError{Command: a.opts.name, Err: err}
	}
	return a.surface.Parse(ctx, prepared)
}

func (a *App) prepare(argv []string) ([]string, error) {
	expanded, err := expandFiles(argv, a.opts.filePrefix, 0)
	if err != nil {
		return nil, err
	}
	return expandGreedy(a.surface.root, expanded), nil
}

// Dispatch acts on a parsed invocation. When nothing was selected, or a
// base command was, it prints help and returns nil. A selected command
// without behavior prints help and returns an *ExitError with code 1. A
// leaf runs its handler; handler errors come back as *ExitError, keeping
// the code of an *ExitError the handler returned itself.
func (a *App) Dispatch(ctx context.Context, inv *Invocation) error {
	if inv == nil || inv.Handled {
		return nil
	}
	p := inv.parser
	if p == nil {
		p = a.surface.Root()
	}
	switch {
	case !inv.Selected:
		a.opts.logger.Debug("no command selected")
		return a.surface.PrintHelp(p)
	case inv.Binding == nil:
		a.opts.logger.Debug("selected command has no behavior", "path", displayPath(inv.Path))
		if err := a.surface.PrintHelp(p); err != nil {
			return err
		}
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("%s: %w", displayPath(inv.Path), ErrNoBinding)}
	case inv.Binding.IsBase:
		a.opts.logger.Debug("dispatch base command", "path", displayPath(inv.Path))
		return a.surface.PrintHelp(p)
	}

	a.opts.logger.Debug("dispatch", "path", displayPath(inv.Path))
	err := inv.Binding.Command.Run(ctx, inv.Args)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// Run parses argv, dispatches and prints any error. It returns the process
// exit code.
func (a *App) Run(ctx context.Context, argv []string) types.ExitCode {
	inv, err := a.Parse(ctx, argv)
	if err != nil {
		a.printError(err)
		return types.ExitFailure
	}
	if err := a.Dispatch(ctx, inv); err != nil {
		return a.exitCode(err)
	}
	return types.ExitSuccess
}

// Execute is the process entry point: it parses os.Args with fang for
// styled help, errors and --version, handles interrupts, then dispatches.
// The returned error, if any, has already been printed; use ExitCode to
// turn it into a status.
func (a *App) Execute(ctx context.Context) error {
	argv, err := a.prepare(os.Args[1:])
	if err != nil {
		a.printError(err)
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	root := a.surface.root.cmd
	a.surface.reset()
	root.SetArgs(argv)

	fopts := []fang.Option{fang.WithNotifySignal(os.Interrupt), fang.WithoutManpage(), fang.WithoutCompletions()}
	if a.opts.version != "" {
		fopts = append(fopts, fang.WithVersion(a.opts.version), fang.WithCommit(a.opts.commit))
	} else {
		fopts = append(fopts, fang.WithoutVersion())
	}
	if err := fang.Execute(ctx, root, fopts...); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: &UsageError{Command: root.Name(), Err: err}}
	}

	if err := a.Dispatch(ctx, a.surface.take()); err != nil {
		code := a.exitCode(err)
		return &ExitError{Code: code, Err: err}
	}
	return nil
}

// ExitCode maps an error returned by Execute or Dispatch to a status.
func ExitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	return types.ExitFailure
}

// exitCode prints err unless it is a bare exit status and returns its code.
func (a *App) exitCode(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return ExitCode(err)
	}
	a.printError(err)
	return ExitCode(err)
}

func (a *App) printError(err error) {
	w := a.opts.stderr
	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(a.opts.verbose)
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+msg)

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, HintStyle.Render(fmt.Sprintf("Run '%s --help' for usage.", usage.Command)))
	}
	if a.opts.verbose && ae != nil {
		printGuidance(w, ae, a.opts.guideStyle)
	}
}

func printGuidance(w io.Writer, ae *issue.ActionableError, style string) {
	guide, err := ae.Guidance(style)
	if err != nil || guide == "" {
		return
	}
	fmt.Fprint(w, guide)
}
