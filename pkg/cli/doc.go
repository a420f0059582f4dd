// SPDX-License-Identifier: MPL-2.0

// Package cli turns a command.Tree into a working command-line program.
//
// Build walks the tree once, compiles every parameter through a
// handler.Resolver and registers the result on a cobra command hierarchy.
// Each run is split into Parse, which reads argv into an Invocation, and
// Dispatch, which shows help or calls the selected leaf's handler with its
// declared parameters only.
//
//	app, err := cli.Build(tree, cli.WithName("calc"))
//	if err != nil {
//		return err
//	}
//	os.Exit(int(app.Run(ctx, os.Args[1:])))
package cli
