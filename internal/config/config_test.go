package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Frecency.Enabled)
	assert.Equal(t, 50, cfg.Search.DebounceMs)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, "bm", cfg.Bookmarks.Keyword)
	assert.Equal(t, "run", cfg.Apps.Keyword)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
frecency:
  enabled: false
search:
  debounce_ms: 120
  max_results: 25
  pins:
    cb: Chrome
bookmarks:
  keyword: marks
  profiles: [Default, "Profile 3"]
open:
  browser: "firefox --new-tab"
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Frecency.Enabled)
	assert.Equal(t, 120, cfg.Search.DebounceMs)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.Equal(t, map[string]string{"cb": "Chrome"}, cfg.Search.Pins)
	assert.Equal(t, "marks", cfg.Bookmarks.Keyword)
	assert.Equal(t, []string{"Default", "Profile 3"}, cfg.Bookmarks.Profiles)
	assert.Equal(t, "firefox --new-tab", cfg.Open.Browser)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.DebounceMs = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestValidateFillsEmptyKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bookmarks.Keyword = ""
	cfg.Apps.Keyword = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bm", cfg.Bookmarks.Keyword)
	assert.Equal(t, "run", cfg.Apps.Keyword)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Search.Pins = map[string]string{"gh": "GitHub"}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Search.Pins, loaded.Search.Pins)
}

func TestUsagePathDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.UsagePath())

	cfg.Frecency.Path = "/tmp/custom.json"
	assert.Equal(t, "/tmp/custom.json", cfg.UsagePath())
}
