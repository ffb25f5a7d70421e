// Package config provides configuration management for beacon.
package config

import (
	"os"
	"path/filepath"
)

// Paths holds the directories beacon reads and writes.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/beacon)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/beacon)
	DataDir string
}

// DefaultPaths returns the default paths per the XDG Base Directory spec.
func DefaultPaths() *Paths {
	home := homeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "beacon"),
		DataDir:   filepath.Join(dataHome, "beacon"),
	}
}

// ConfigFile returns the path of the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// UsageFile returns the default usage-history file path.
func (p *Paths) UsageFile() string {
	return filepath.Join(p.DataDir, "usage.json")
}

// SelectionsDB returns the default selection-log database path.
func (p *Paths) SelectionsDB() string {
	return filepath.Join(p.DataDir, "selections.db")
}

// LockFile returns the single-instance lock path.
func (p *Paths) LockFile() string {
	return filepath.Join(p.DataDir, "beacon.lock")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Keeps paths well-formed even in odd environments.
		return "."
	}
	return home
}
