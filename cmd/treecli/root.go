// SPDX-License-Identifier: MPL-2.0

// Package cmd is the treecli demo program: a small command tree built with
// pkg/cli, configured from config.cue or config.toml.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/treecli/treecli/internal/config"
	"github.com/treecli/treecli/internal/issue"
	"github.com/treecli/treecli/internal/logger"
	"github.com/treecli/treecli/pkg/cli"
	"github.com/treecli/treecli/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// Execute runs the program on os.Args and exits with its status.
func Execute() {
	os.Exit(int(run(context.Background(), os.Stdout, os.Stderr)))
}

func run(ctx context.Context, stdout, stderr io.Writer) types.ExitCode {
	cfg, path, err := config.LoadWithPath(ctx, config.LoadOptions{})
	if err != nil {
		fmt.Fprintln(stderr, cli.WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
		cfg, path = config.DefaultConfig(), ""
	}

	lg, err := logger.New(stderr, cfg.LogLevel.String())
	if err != nil {
		fmt.Fprintln(stderr, cli.ErrorStyle.Render("Error:")+" "+err.Error())
		return types.ExitFailure
	}
	if path != "" {
		lg.Debug("loaded configuration", "path", path)
	}

	app, err := newApp(&env{cfg: cfg, cfgPath: path, out: stdout}, lg, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, cli.ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, cfg.UI.Verbose))
		return types.ExitFailure
	}
	return cli.ExitCode(app.Execute(ctx))
}

// newApp builds the demo command tree into an App.
func newApp(e *env, lg *log.Logger, stdout, stderr io.Writer) (*cli.App, error) {
	tree, err := newTree(e)
	if err != nil {
		return nil, err
	}
	return cli.Build(tree,
		cli.WithName("treecli"),
		cli.WithShort("A demo of declarative command trees"),
		cli.WithEpilog("Arguments can be read from files: treecli math add @args.txt"),
		cli.WithVersion(Version, Commit),
		cli.WithFromFilePrefix("@"),
		cli.WithDefaults(e.cfg.Defaults),
		cli.WithLogger(lg),
		cli.WithOutput(stdout, stderr),
		cli.WithVerbose(e.cfg.UI.Verbose),
		cli.WithGuidanceStyle(e.cfg.UI.ColorScheme.String()),
	)
}

func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
