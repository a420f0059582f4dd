// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/treecli/treecli/cmd/treecli"

func main() {
	cmd.Execute()
}
