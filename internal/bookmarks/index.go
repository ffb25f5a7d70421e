package bookmarks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runger/beacon/internal/debounce"
)

// reindexDelay coalesces the event burst a browser produces when it
// rewrites its bookmarks file into a single re-index.
const reindexDelay = 200 * time.Millisecond

// DefaultMaxResults bounds how many entries a search returns when the
// caller does not configure a limit.
const DefaultMaxResults = 100

// Index maintains the flat bookmark snapshot. Rebuilds replace the whole
// snapshot through an atomic pointer swap, so a search racing with a
// rebuild sees either the old or the new list, never a partial one.
type Index struct {
	logger     *slog.Logger
	maxResults int

	// profiles is only mutated via Reconfigure from the owning context.
	profiles []Profile

	snapshot atomic.Pointer[[]Entry]
}

// NewIndex creates an index over the given profiles. The snapshot starts
// empty; call Refresh to populate it.
func NewIndex(profiles []Profile, maxResults int, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	idx := &Index{
		logger:     logger,
		maxResults: maxResults,
		profiles:   profiles,
	}
	empty := make([]Entry, 0)
	idx.snapshot.Store(&empty)
	return idx
}

// Refresh rebuilds the snapshot from every profile's bookmarks file. There
// is no incremental diffing: the whole list is rebuilt and swapped in. An
// unreadable or malformed source contributes nothing and is logged.
func (idx *Index) Refresh() {
	var entries []Entry
	for _, p := range idx.profiles {
		parsed, err := parseFile(p.Path, p.Name)
		if err != nil {
			idx.logger.Warn("bookmark source skipped", "path", p.Path, "error", err)
			continue
		}
		entries = append(entries, parsed...)
	}
	if entries == nil {
		entries = make([]Entry, 0)
	}
	idx.snapshot.Store(&entries)
	idx.logger.Debug("bookmark index rebuilt", "profiles", len(idx.profiles), "entries", len(entries))
}

// Reconfigure replaces the profile set and rebuilds immediately.
func (idx *Index) Reconfigure(profiles []Profile) {
	idx.profiles = profiles
	idx.Refresh()
}

// Entries returns the current snapshot. The returned slice is shared and
// must be treated as read-only.
func (idx *Index) Entries() []Entry {
	return *idx.snapshot.Load()
}

// Watch subscribes to filesystem notifications for each profile's
// bookmarks file and triggers a full re-index on any event. It blocks
// until ctx is cancelled.
//
// Browsers replace the bookmarks file by rename, which would drop a watch
// placed on the file itself, so the containing directory is watched and
// events are filtered by file name.
func (idx *Index) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("bookmarks: create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range idx.profiles {
		watched[filepath.Clean(p.Path)] = struct{}{}
		dirs[filepath.Dir(p.Path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			idx.logger.Warn("bookmark watch failed", "dir", dir, "error", err)
		}
	}

	reindex := debounce.New(reindexDelay)
	defer reindex.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("bookmarks: watcher event channel closed")
			}
			if _, match := watched[filepath.Clean(evt.Name)]; !match {
				continue
			}
			idx.logger.Debug("bookmark source changed", "path", evt.Name, "op", evt.Op.String())
			reindex.Trigger(idx.Refresh)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("bookmarks: watcher error channel closed")
			}
			idx.logger.Warn("bookmark watcher error", "error", err)
		}
	}
}
