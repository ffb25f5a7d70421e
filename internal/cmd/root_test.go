package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelMapping(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logLevel("info"))
	assert.Equal(t, slog.LevelWarn, logLevel("warn"))
	assert.Equal(t, slog.LevelError, logLevel("error"))
	assert.Equal(t, slog.LevelInfo, logLevel(""))
	assert.Equal(t, slog.LevelInfo, logLevel("bogus"))
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCmd("test")

	want := []string{"query", "index", "history", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		require.True(t, found, "missing subcommand %s", name)
	}

	assert.NotNil(t, root.Flags().Lookup("history"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
