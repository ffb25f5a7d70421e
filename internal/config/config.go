package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the beacon configuration.
type Config struct {
	Frecency  FrecencyConfig  `yaml:"frecency"`
	Search    SearchConfig    `yaml:"search"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Apps      AppsConfig      `yaml:"apps"`
	Open      OpenConfig      `yaml:"open"`
	Log       LogConfig       `yaml:"log"`
}

// FrecencyConfig controls usage-history tracking.
type FrecencyConfig struct {
	Enabled bool   `yaml:"enabled"` // Track selections for ranking
	Path    string `yaml:"path"`    // Usage-history file (empty = default)
}

// SearchConfig controls query evaluation.
type SearchConfig struct {
	DebounceMs int               `yaml:"debounce_ms"` // Keystroke coalescing window
	MaxResults int               `yaml:"max_results"` // Max results per search
	Pins       map[string]string `yaml:"pins"`        // Query prefix -> pinned display-name substring
}

// BookmarksConfig controls the bookmark indexer.
type BookmarksConfig struct {
	Keyword string `yaml:"keyword"` // Keyword for the bookmark command

	// ProfileDir is the browser profile parent directory. Empty selects a
	// platform default.
	ProfileDir string `yaml:"profile_dir"`

	// Profiles is an explicit profile name list. Empty means auto-detect.
	Profiles []string `yaml:"profiles"`
}

// AppsConfig controls the installed-commands provider.
type AppsConfig struct {
	Keyword string `yaml:"keyword"` // Keyword for the run command
}

// OpenConfig selects the open behavior for URL choices.
type OpenConfig struct {
	// Browser is a dedicated browser command line (e.g. "firefox
	// --new-tab"); the URL is appended. Empty uses the system default.
	Browser string `yaml:"browser"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Frecency: FrecencyConfig{
			Enabled: true,
		},
		Search: SearchConfig{
			DebounceMs: 50,
			MaxResults: 100,
		},
		Bookmarks: BookmarksConfig{
			Keyword: "bm",
		},
		Apps: AppsConfig{
			Keyword: "run",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from path. A missing file yields the
// defaults; a malformed or invalid file is an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML to path.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks ranges and fills derivable defaults.
func (c *Config) Validate() error {
	if c.Search.DebounceMs < 0 {
		return errors.New("search.debounce_ms must be >= 0")
	}
	if c.Search.MaxResults < 0 {
		return errors.New("search.max_results must be >= 0")
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = DefaultConfig().Search.MaxResults
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}
	if c.Bookmarks.Keyword == "" {
		c.Bookmarks.Keyword = DefaultConfig().Bookmarks.Keyword
	}
	if c.Apps.Keyword == "" {
		c.Apps.Keyword = DefaultConfig().Apps.Keyword
	}
	return nil
}

// UsagePath resolves the usage-history file path.
func (c *Config) UsagePath() string {
	if c.Frecency.Path != "" {
		return c.Frecency.Path
	}
	return DefaultPaths().UsageFile()
}

// ProfileDir resolves the browser profile parent directory.
func (c *Config) ProfileDir() string {
	if c.Bookmarks.ProfileDir != "" {
		return c.Bookmarks.ProfileDir
	}
	home := homeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome")
	default:
		return filepath.Join(home, ".config", "google-chrome")
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
