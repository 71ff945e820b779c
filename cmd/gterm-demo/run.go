// ABOUTME: The run command: concurrent producers write into the output log while the user types
// ABOUTME: Half the producers print to stdout, which the Terminal captures and routes to the log

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/gterm/internal/config"
	"github.com/mauromedda/gterm/internal/log"
	"github.com/mauromedda/gterm/pkg/tui"
	"github.com/mauromedda/gterm/pkg/tui/terminal"
)

type runFlags struct {
	workers    int
	lines      int
	noRedirect bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	var rf runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render concurrent producer output above an input line (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				s.Demo.Workers = rf.workers
			}
			if cmd.Flags().Changed("lines") {
				s.Demo.LinesPerWorker = rf.lines
			}
			if rf.noRedirect {
				s.Output.Redirect = false
			}

			closer, err := setupLogging(s)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDemo(ctx, s)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&rf.workers, "workers", "w", 0, "number of producer goroutines")
	f.IntVarP(&rf.lines, "lines", "n", 0, "lines written by each producer")
	f.BoolVar(&rf.noRedirect, "no-redirect", false, "do not capture stdout")
	return cmd
}

func runDemo(ctx context.Context, s *config.Settings) error {
	term := tui.New()
	defer term.Close()
	defer terminal.RestoreOnPanic(term.Device())

	if err := term.Init(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := buildScreen(term, s, true)
	sc.input.OnCommit().Add(func(line string) { sc.handleCommand(line, cancel) }, sc)
	tui.Add(term, &quitKeys{quit: cancel})

	emit := term.Output
	if s.Output.Redirect {
		if err := term.RedirectStdout(); err != nil {
			log.Warn("demo: stdout capture unavailable: %v", err)
		} else {
			defer term.RestoreStdout()
			emit = func(format string, args ...any) { fmt.Printf(format, args...) }
		}
	}

	log.Info("demo: %d workers x %d lines", s.Demo.Workers, s.Demo.LinesPerWorker)
	term.Output("type \"help\" for commands\n")

	g, gctx := errgroup.WithContext(ctx)
	for id := range s.Demo.Workers {
		out := term.Output
		if id%2 == 1 {
			out = emit
		}
		g.Go(func() error {
			defer terminal.RecoverGoroutine(term.Device())
			return produce(gctx, id, s.Demo, out)
		})
	}
	g.Go(func() error {
		return uiLoop(gctx, term, s.Demo.FrameInterval)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	log.Info("demo: done")
	return nil
}

// produce writes lines through out until it has written its quota or ctx ends.
func produce(ctx context.Context, id int, d config.DemoSettings, out func(format string, args ...any)) error {
	for i := range d.LinesPerWorker {
		out("worker %d: line %d\n", id, i)
		if d.LineInterval <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d.LineInterval):
		}
	}
	return nil
}
