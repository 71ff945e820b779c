// ABOUTME: Screen layout shared by the demo commands: banner, output log and input line
// ABOUTME: Also holds the commands understood on the input line and the Ctrl+C/Ctrl+D quit element

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/gterm/internal/config"
	"github.com/mauromedda/gterm/pkg/tui"
	"github.com/mauromedda/gterm/pkg/tui/component"
	"github.com/mauromedda/gterm/pkg/tui/key"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

type screen struct {
	term   *tui.Terminal
	banner *component.Banner
	output *component.TextOutputStream
	input  *component.TextInputStream
}

// buildScreen adds the elements in render order. The output log is the
// first text-accepting element, so it receives Output and echoed commits.
func buildScreen(term *tui.Terminal, s *config.Settings, withInput bool) *screen {
	term.SetRowOffset(s.RowOffset)

	sc := &screen{term: term}
	sc.banner = tui.Add(term, component.NewBanner(bannerStyle.Render(s.Banner.Text), s.Banner.Centered))
	sc.banner.SetRow(s.Banner.Row)
	sc.output = tui.Add(term, component.NewTextOutputStream(s.Output.Limit))
	if withInput {
		sc.input = tui.Add(term, component.NewTextInputStream())
		sc.input.SetPrompt(s.Input.Prompt)
	}
	return sc
}

const helpText = `commands:
  help           this text
  clear          empty the output log
  banner <text>  replace the banner
  quit, exit     leave the demo
`

// handleCommand runs after the committed line was echoed. Anything that is
// not a command is left as plain echo.
func (sc *screen) handleCommand(line string, quit func()) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "quit", "exit":
		quit()
	case "help":
		sc.term.Output("%s", helpText)
	case "clear":
		sc.output.Clear()
		sc.term.ClearTerminalBuffer()
	case "banner":
		if arg = strings.TrimSpace(arg); arg != "" {
			sc.banner.SetText(bannerStyle.Render(arg))
		}
	}
}

// quitKeys ends the demo on Ctrl+C or Ctrl+D when they arrive as keys
// rather than as a signal.
type quitKeys struct {
	tui.Base
	quit func()
}

func (q *quitKeys) Capabilities() tui.Capability {
	return tui.CapKeyInput
}

func (q *quitKeys) OnKeyInput(s *tui.Scope, ev key.Event) {
	if !ev.Pressed || !ev.Modifiers.Ctrl() {
		return
	}
	if ev.VirtualKeyCode == 'C' || ev.VirtualKeyCode == 'D' {
		s.Defer(q.quit)
	}
}
