// ABOUTME: Demo settings loaded from YAML files layered over built-in defaults
// ABOUTME: Later files override earlier ones field by field; ${VAR} is expanded afterwards

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the merged configuration.
type Settings struct {
	Banner    BannerSettings `yaml:"banner"`
	RowOffset int            `yaml:"row_offset"`
	Output    OutputSettings `yaml:"output"`
	Input     InputSettings  `yaml:"input"`
	Demo      DemoSettings   `yaml:"demo"`
	Log       LogSettings    `yaml:"log"`
}

// BannerSettings configures the title line.
type BannerSettings struct {
	Text     string `yaml:"text"`
	Centered bool   `yaml:"centered"`
	Row      int    `yaml:"row"`
}

// OutputSettings configures the output stream and stdout capture.
type OutputSettings struct {
	Limit    int  `yaml:"limit"`
	Redirect bool `yaml:"redirect"`
}

// InputSettings configures the input line.
type InputSettings struct {
	Prompt string `yaml:"prompt"`
}

// DemoSettings drives the producer goroutines and the UI loop.
type DemoSettings struct {
	Workers        int           `yaml:"workers"`
	LinesPerWorker int           `yaml:"lines_per_worker"`
	LineInterval   time.Duration `yaml:"line_interval"`
	FrameInterval  time.Duration `yaml:"frame_interval"`
}

// LogSettings routes diagnostics away from the rendered screen.
type LogSettings struct {
	File      string `yaml:"file"`
	Level     string `yaml:"level"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// Default returns the settings used when no file sets a field.
func Default() Settings {
	return Settings{
		Banner:    BannerSettings{Text: "gterm", Centered: true, Row: 1},
		RowOffset: 2,
		Output:    OutputSettings{Limit: 200, Redirect: true},
		Input:     InputSettings{Prompt: "INPUT> "},
		Demo: DemoSettings{
			Workers:        4,
			LinesPerWorker: 25,
			LineInterval:   250 * time.Millisecond,
			FrameInterval:  16 * time.Millisecond,
		},
		Log: LogSettings{Level: "info", MaxSizeMB: 10},
	}
}

// Load layers each existing file over Default in order. Missing files are
// skipped; unknown keys and malformed YAML are errors.
func Load(paths ...string) (*Settings, error) {
	s := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := loadFile(path, &s); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	ResolveEnvVars(&s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadFile decodes path onto s, leaving fields the file omits untouched.
func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing: %w", err)
	}
	return nil
}

// Validate rejects values the demo cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.Banner.Row < 1:
		return fmt.Errorf("banner.row must be >= 1, got %d", s.Banner.Row)
	case s.RowOffset < 0:
		return fmt.Errorf("row_offset must be >= 0, got %d", s.RowOffset)
	case s.Output.Limit < 0:
		return fmt.Errorf("output.limit must be >= 0, got %d", s.Output.Limit)
	case s.Demo.Workers < 0:
		return fmt.Errorf("demo.workers must be >= 0, got %d", s.Demo.Workers)
	case s.Demo.LinesPerWorker < 0:
		return fmt.Errorf("demo.lines_per_worker must be >= 0, got %d", s.Demo.LinesPerWorker)
	case s.Demo.FrameInterval <= 0:
		return fmt.Errorf("demo.frame_interval must be positive, got %s", s.Demo.FrameInterval)
	case s.Demo.LineInterval < 0:
		return fmt.Errorf("demo.line_interval must be >= 0, got %s", s.Demo.LineInterval)
	}
	return nil
}
