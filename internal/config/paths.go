// ABOUTME: Standard filesystem paths for gterm configuration
// ABOUTME: Resolves ~/.gterm/config.yaml globally and $GTERM_CONFIG as an override file

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName = ".gterm"
	configName    = "config.yaml"

	// EnvConfig names an extra settings file layered over the global one.
	EnvConfig = "GTERM_CONFIG"
)

// GlobalDir returns the user-global config directory (~/.gterm/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns ~/.gterm/config.yaml.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configName)
}

// DefaultPaths returns the files Load should read when no path is given on
// the command line: the global file, then $GTERM_CONFIG if set.
func DefaultPaths() []string {
	paths := []string{GlobalConfigFile()}
	if p := os.Getenv(EnvConfig); p != "" {
		paths = append(paths, p)
	}
	return paths
}
