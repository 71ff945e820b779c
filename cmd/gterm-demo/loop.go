// ABOUTME: The UI loop: poll input and redraw at a fixed frame interval until the context ends
// ABOUTME: Render is cheap when nothing changed, so the ticker can run fast

package main

import (
	"context"
	"time"

	"github.com/mauromedda/gterm/pkg/tui"
)

func uiLoop(ctx context.Context, term *tui.Terminal, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		term.Update()
		term.Render()

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}
