// Package frecency persists per-item usage statistics and exposes the
// recency score consumed by the ranking engine.
//
// The store is a flat JSON object mapping an opaque item identifier to its
// usage count and last-used timestamp. Usage history is best-effort: a
// missing or corrupt file degrades to an empty map, and a failed write is
// logged and swallowed, leaving the in-memory state authoritative for the
// rest of the process.
package frecency

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Record holds the persisted usage statistics for a single item.
type Record struct {
	Count    int   `json:"count"`
	LastUsed int64 `json:"last_used"` // Unix seconds
}

// Store owns the usage-history map. It must only be mutated from a single
// goroutine (the engine's event context); it carries no internal locking.
type Store struct {
	path    string
	enabled bool
	logger  *slog.Logger
	entries map[string]Record

	// now is injectable for tests.
	now func() time.Time
}

// NewStore creates a store backed by the given file path. When enabled is
// false, Record becomes a no-op and Score always returns 0.
func NewStore(path string, enabled bool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:    path,
		enabled: enabled,
		logger:  logger,
		entries: make(map[string]Record),
		now:     time.Now,
	}
}

// Load reads the usage-history file. A missing file is the normal first-run
// case; a malformed file is logged and replaced with an empty map. Load
// never fails.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("usage history unreadable", "path", s.path, "error", err)
		}
		s.entries = make(map[string]Record)
		return
	}

	entries := make(map[string]Record)
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("usage history malformed, starting empty",
			"path", s.path, "bytes", len(data), "error", err)
		s.entries = make(map[string]Record)
		return
	}
	s.entries = entries
}

// Record notes a selection of id: count is incremented and last_used set to
// the current wall-clock second, then the full map is synchronously written
// back. A no-op when tracking is disabled or id is empty.
//
// Every selection incurs one full-file rewrite. Selections are human-paced,
// so this is not batched or debounced.
func (s *Store) Record(id string) {
	if !s.enabled || id == "" {
		return
	}

	rec := s.entries[id]
	rec.Count++

	// Timestamps are monotonically non-decreasing across updates even if
	// the wall clock steps backwards.
	ts := s.now().Unix()
	if ts < rec.LastUsed {
		ts = rec.LastUsed
	}
	rec.LastUsed = ts
	s.entries[id] = rec

	if err := s.persist(); err != nil {
		s.logger.Warn("usage history write failed", "path", s.path, "error", err)
	}
}

// Score returns the last-used timestamp for id, or 0 when the item has
// never been selected or tracking is disabled.
func (s *Store) Score(id string) int64 {
	if !s.enabled || id == "" {
		return 0
	}
	return s.entries[id].LastUsed
}

// Count returns the persisted selection count for id. The ranking engine
// intentionally ignores it; it is kept for history display.
func (s *Store) Count(id string) int {
	return s.entries[id].Count
}

// Len returns the number of tracked items.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear resets the usage history to an empty map and persists the result.
func (s *Store) Clear() {
	s.entries = make(map[string]Record)
	if err := s.persist(); err != nil {
		s.logger.Warn("usage history write failed", "path", s.path, "error", err)
	}
}

// persist writes the full map atomically: marshal, write to a temp file in
// the same directory, rename over the target.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal usage history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".usage-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write usage history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close usage history: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace usage history: %w", err)
	}
	return nil
}
