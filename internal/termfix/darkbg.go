// ABOUTME: Pre-sets lipgloss dark background so styling never sends OSC colour queries
// ABOUTME: Import with _ from any binary that styles text while the terminal is in raw mode

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Without an explicit background lipgloss asks the terminal with
	// OSC 10/11 on first use. In raw mode the reply lands on stdin and
	// Update would decode it as keystrokes into the input line.
	lipgloss.SetHasDarkBackground(true)
}
