// Command tomo is a command-line interface to the filter-graph engine:
// loading a saved state file, refreshing it, and exporting its
// outputs, following the teacher's cmd/inmap entry point (a thin main
// that builds and executes a cobra command tree).
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
