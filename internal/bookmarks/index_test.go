package bookmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/beacon/internal/logging"
)

func bookmarksDoc(urls ...string) string {
	children := ""
	for i, u := range urls {
		if i > 0 {
			children += ","
		}
		children += fmt.Sprintf(`{"type":"url","name":"link %d","url":"%s"}`, i, u)
	}
	return fmt.Sprintf(`{"roots":{"bookmark_bar":{"type":"folder","name":"Bookmarks bar","children":[%s]}}}`, children)
}

func writeProfile(t *testing.T, parent, name, doc string) Profile {
	t.Helper()
	dir := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, bookmarksFileName)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return Profile{Name: name, Path: path}
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	parent := t.TempDir()
	p := writeProfile(t, parent, "Default", bookmarksDoc("https://a.example.com/", "https://b.example.com/"))

	idx := NewIndex([]Profile{p}, 0, logging.Discard())
	assert.Empty(t, idx.Entries())

	idx.Refresh()
	assert.Len(t, idx.Entries(), 2)
}

func TestRefreshSkipsUnreadableProfile(t *testing.T) {
	parent := t.TempDir()
	good := writeProfile(t, parent, "Default", bookmarksDoc("https://ok.example.com/"))
	bad := Profile{Name: "Profile 1", Path: filepath.Join(parent, "Profile 1", bookmarksFileName)}

	idx := NewIndex([]Profile{bad, good}, 0, logging.Discard())
	idx.Refresh()

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://ok.example.com/", entries[0].URL)
}

func TestRefreshReplacesSnapshotWholesale(t *testing.T) {
	parent := t.TempDir()
	p := writeProfile(t, parent, "Default", bookmarksDoc("https://old.example.com/"))

	idx := NewIndex([]Profile{p}, 0, logging.Discard())
	idx.Refresh()
	old := idx.Entries()
	require.Len(t, old, 1)

	require.NoError(t, os.WriteFile(p.Path, []byte(bookmarksDoc("https://new.example.com/")), 0o644))
	idx.Refresh()

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://new.example.com/", entries[0].URL)
	// The previously returned snapshot is untouched.
	assert.Equal(t, "https://old.example.com/", old[0].URL)
}

func TestReconfigure(t *testing.T) {
	parent := t.TempDir()
	first := writeProfile(t, parent, "Default", bookmarksDoc("https://one.example.com/"))
	second := writeProfile(t, parent, "Profile 1", bookmarksDoc("https://two.example.com/", "https://three.example.com/"))

	idx := NewIndex([]Profile{first}, 0, logging.Discard())
	idx.Refresh()
	require.Len(t, idx.Entries(), 1)

	idx.Reconfigure([]Profile{second})
	assert.Len(t, idx.Entries(), 2)
}

func TestDiscoverProfiles(t *testing.T) {
	parent := t.TempDir()
	writeProfile(t, parent, "Default", bookmarksDoc("https://d.example.com/"))
	writeProfile(t, parent, "Profile 2", bookmarksDoc("https://p2.example.com/"))
	writeProfile(t, parent, "Profile 1", bookmarksDoc("https://p1.example.com/"))
	// Directories without a bookmarks file are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "Profile 9"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "Crash Reports"), 0o755))

	profiles := DiscoverProfiles(parent)
	require.Len(t, profiles, 3)
	assert.Equal(t, "Default", profiles[0].Name)
	assert.Equal(t, "Profile 1", profiles[1].Name)
	assert.Equal(t, "Profile 2", profiles[2].Name)
}

func TestExplicitProfiles(t *testing.T) {
	parent := t.TempDir()
	writeProfile(t, parent, "Work", bookmarksDoc("https://w.example.com/"))

	profiles := ExplicitProfiles(parent, []string{"Work", "Missing"})
	require.Len(t, profiles, 1)
	assert.Equal(t, "Work", profiles[0].Name)
}

func TestWatchTriggersReindex(t *testing.T) {
	parent := t.TempDir()
	p := writeProfile(t, parent, "Default", bookmarksDoc("https://before.example.com/"))

	idx := NewIndex([]Profile{p}, 0, logging.Discard())
	idx.Refresh()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- idx.Watch(ctx) }()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p.Path, []byte(bookmarksDoc("https://after.example.com/")), 0o644))

	require.Eventually(t, func() bool {
		entries := idx.Entries()
		return len(entries) == 1 && entries[0].URL == "https://after.example.com/"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
