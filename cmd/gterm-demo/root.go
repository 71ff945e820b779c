// ABOUTME: Cobra command tree: run (default) starts the producer demo, keys inspects raw key events
// ABOUTME: Persistent flags select the config file and override log destination and level

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mauromedda/gterm/internal/config"
	"github.com/mauromedda/gterm/internal/log"
)

type rootFlags struct {
	configPath string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "gterm-demo",
		Short: "Demonstrate the gterm terminal toolkit",
		Long: `gterm-demo puts the terminal in raw mode and renders a banner, a scrolling
output log fed by concurrent producers, and an input line.

Type a line and press Enter to echo it. "quit" or Ctrl+C exits.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "settings file (default ~/.gterm/config.yaml, then $"+config.EnvConfig+")")
	pf.StringVar(&flags.logFile, "log-file", "", "write diagnostics to this rotated file")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	run := newRunCmd(&flags)
	root.AddCommand(run, newKeysCmd(&flags))
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())

	return root
}

// loadSettings reads config files and applies the flag overrides.
func loadSettings(flags *rootFlags) (*config.Settings, error) {
	paths := config.DefaultPaths()
	if flags.configPath != "" {
		paths = append(paths, flags.configPath)
	}

	s, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	if flags.logFile != "" {
		s.Log.File = flags.logFile
	}
	if flags.logLevel != "" {
		s.Log.Level = flags.logLevel
	}
	return s, nil
}

// setupLogging applies the level and, when a file is configured, moves log
// output there. Stderr would otherwise scribble over the rendered frame.
func setupLogging(s *config.Settings) (io.Closer, error) {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if s.Log.File == "" {
		prev := log.SetOutput(io.Discard)
		return closerFunc(func() error {
			log.SetOutput(prev)
			return nil
		}), nil
	}
	return log.OpenFile(s.Log.File, s.Log.MaxSizeMB), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
