// ABOUTME: RestoreOnPanic recovers from panics, puts the device back in cooked mode and prints the stack.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mauromedda/gterm/pkg/tui/ansi"
)

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the terminal). On panic it resets attributes, exits raw mode on
// d, prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(d Device) {
	r := recover()
	if r == nil {
		return
	}

	reset(d)
	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// such as output producers. Unlike RestoreOnPanic it does NOT call os.Exit,
// allowing the main goroutine to handle shutdown.
func RecoverGoroutine(d Device) {
	r := recover()
	if r == nil {
		return
	}

	reset(d)
	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}

// reset is best-effort: show cursor, clear attributes, leave raw mode.
func reset(d Device) {
	_, _ = d.Write([]byte(ansi.Reset + ansi.ShowCursor))
	_ = d.Flush()
	_ = d.ExitRawMode()
}
