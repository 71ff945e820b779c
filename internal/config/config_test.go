// ABOUTME: Tests for layered YAML settings loading and validation
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NoFilesGivesDefaults(t *testing.T) {
	t.Parallel()

	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if *s != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", *s, Default())
	}
}

func TestLoad_FileOverridesOnlyWhatItSets(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", `
banner:
  text: hello
output:
  limit: 3
demo:
  frame_interval: 50ms
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	def := Default()
	if s.Banner.Text != "hello" {
		t.Errorf("Banner.Text = %q, want hello", s.Banner.Text)
	}
	if s.Banner.Centered != def.Banner.Centered || s.Banner.Row != def.Banner.Row {
		t.Errorf("unset banner fields lost their defaults: %+v", s.Banner)
	}
	if s.Output.Limit != 3 || s.Output.Redirect != def.Output.Redirect {
		t.Errorf("Output = %+v", s.Output)
	}
	if s.Demo.FrameInterval != 50*time.Millisecond {
		t.Errorf("FrameInterval = %s, want 50ms", s.Demo.FrameInterval)
	}
	if s.Demo.Workers != def.Demo.Workers {
		t.Errorf("Workers = %d, want default %d", s.Demo.Workers, def.Demo.Workers)
	}
}

func TestLoad_LaterFilesWin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	global := writeFile(t, dir, "global.yaml", "row_offset: 5\nbanner:\n  text: global\n")
	local := writeFile(t, dir, "local.yaml", "banner:\n  text: local\n")

	s, err := Load(global, local)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if s.Banner.Text != "local" {
		t.Errorf("Banner.Text = %q, want local", s.Banner.Text)
	}
	if s.RowOffset != 5 {
		t.Errorf("RowOffset = %d, want 5 from the global file", s.RowOffset)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if *s != Default() {
		t.Errorf("empty file changed settings: %+v", *s)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: "banner: [", wantErr: "parsing"},
		{name: "unknown key", content: "colour: red\n", wantErr: "colour"},
		{name: "bad duration", content: "demo:\n  frame_interval: soon\n", wantErr: "parsing"},
		{name: "negative limit", content: "output:\n  limit: -1\n", wantErr: "output.limit"},
		{name: "zero frame interval", content: "demo:\n  frame_interval: 0s\n", wantErr: "frame_interval"},
		{name: "row zero", content: "banner:\n  row: 0\n", wantErr: "banner.row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv(EnvConfig, "")
	if got := DefaultPaths(); len(got) != 1 || got[0] != GlobalConfigFile() {
		t.Errorf("DefaultPaths() = %q, want only the global file", got)
	}

	t.Setenv(EnvConfig, "/tmp/override.yaml")
	got := DefaultPaths()
	if len(got) != 2 || got[1] != "/tmp/override.yaml" {
		t.Errorf("DefaultPaths() = %q, want global then override", got)
	}
}

func TestGlobalConfigFile(t *testing.T) {
	t.Parallel()

	if got := GlobalConfigFile(); !strings.HasSuffix(got, filepath.Join(".gterm", "config.yaml")) {
		t.Errorf("GlobalConfigFile() = %q", got)
	}
}
