// ABOUTME: CLI entry point for the gterm demo with terminal crash recovery
// ABOUTME: Builds the cobra command tree and maps a returned error to exit code 1

package main

import (
	"fmt"
	"os"

	// termfix must run before any lipgloss style renders in raw mode.
	_ "github.com/mauromedda/gterm/internal/termfix"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
