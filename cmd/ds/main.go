// Command ds is the CLI surface for pkg/ds, pkg/search, pkg/egraph, and
// pkg/dsp: parse, unparse, search, and egraph subcommands.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
