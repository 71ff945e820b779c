// ABOUTME: The keys command: prints every decoded key event, useful for checking a terminal's sequences
// ABOUTME: Press q (or Ctrl+C) to leave

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mauromedda/gterm/internal/config"
	"github.com/mauromedda/gterm/pkg/tui"
	"github.com/mauromedda/gterm/pkg/tui/key"
	"github.com/mauromedda/gterm/pkg/tui/terminal"
)

func newKeysCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show decoded key events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(root)
			if err != nil {
				return err
			}
			closer, err := setupLogging(s)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runKeys(ctx, s)
		},
	}
}

func runKeys(ctx context.Context, s *config.Settings) error {
	term := tui.New()
	defer term.Close()
	defer terminal.RestoreOnPanic(term.Device())

	if err := term.Init(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keysSettings := *s
	keysSettings.Banner.Text = "key inspector: press q to quit"
	buildScreen(term, &keysSettings, false)
	tui.Add(term, &keyLogger{quit: cancel})
	tui.Add(term, &quitKeys{quit: cancel})

	return uiLoop(ctx, term, s.Demo.FrameInterval)
}

// keyLogger writes one line per event to the default output.
type keyLogger struct {
	tui.Base
	quit func()
}

func (l *keyLogger) Capabilities() tui.Capability {
	return tui.CapKeyInput
}

func (l *keyLogger) OnKeyInput(s *tui.Scope, ev key.Event) {
	s.Output("%s\n", describe(ev))
	if ev.Pressed && ev.Modifiers == 0 && ev.Char == 'q' {
		s.Defer(l.quit)
	}
}

func describe(ev key.Event) string {
	state := "down"
	if !ev.Pressed {
		state = "up"
	}
	return fmt.Sprintf("%-12s %-4s vk=0x%02x scan=0x%02x char=0x%02x mods=0x%02x repeat=%d",
		ev.String(), state, ev.VirtualKeyCode, ev.ScanCode, ev.Char, uint32(ev.Modifiers), ev.RepeatCount)
}
