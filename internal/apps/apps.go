// Package apps indexes executables found on PATH and serves them as
// launchable choices.
package apps

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// App is one installed command.
type App struct {
	Name string // Executable basename
	Path string // First PATH hit for Name
}

// Catalog holds the scanned command set. Like the other engine-owned
// structures it is only mutated from the engine's event context.
type Catalog struct {
	logger *slog.Logger
	apps   []App // sorted by name
}

// NewCatalog creates an empty catalog; call Scan to populate it.
func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{logger: logger}
}

// Scan rebuilds the catalog from the given PATH-style string. Earlier
// directories win name collisions, matching shell resolution order.
func (c *Catalog) Scan(pathEnv string) {
	seen := make(map[string]string)
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			c.logger.Debug("path dir unreadable", "dir", dir, "error", err)
			continue
		}
		for _, de := range entries {
			name := de.Name()
			if _, dup := seen[name]; dup {
				continue
			}
			full := filepath.Join(dir, name)
			if !isExecutable(full) {
				continue
			}
			seen[name] = full
		}
	}

	apps := make([]App, 0, len(seen))
	for name, path := range seen {
		apps = append(apps, App{Name: name, Path: path})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	c.apps = apps
	c.logger.Debug("app catalog scanned", "commands", len(apps))
}

// Len returns the number of catalogued commands.
func (c *Catalog) Len() int { return len(c.apps) }

// Match returns up to limit apps whose name contains the case-folded
// query, name-prefix matches first.
func (c *Catalog) Match(query string, limit int) []App {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	var prefix, contains []App
	for _, a := range c.apps {
		folded := strings.ToLower(a.Name)
		switch {
		case strings.HasPrefix(folded, query):
			prefix = append(prefix, a)
		case strings.Contains(folded, query):
			contains = append(contains, a)
		}
	}

	out := append(prefix, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// All returns up to limit catalogued apps in name order.
func (c *Catalog) All(limit int) []App {
	if limit <= 0 || limit > len(c.apps) {
		limit = len(c.apps)
	}
	out := make([]App, limit)
	copy(out, c.apps[:limit])
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode()&0o111 != 0
}
