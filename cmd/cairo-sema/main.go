// Command cairo-sema runs the semantic analysis pass pipeline over a
// Cairo module and reports its resolved identifier table, or the
// diagnostics that prevented resolution.
//
// Grounded on cmd/cue's cobra command-tree shape (root command with
// persistent flags, one subcommand per verb).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
