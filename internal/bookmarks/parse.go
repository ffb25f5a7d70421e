// Package bookmarks builds and incrementally refreshes a flat, searchable
// index over Chrome-format bookmark files.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
)

// Entry is one flattened bookmark.
type Entry struct {
	Title   string // Leaf name; defaults to the URL when untitled
	URL     string
	Folder  string // Slash-joined ancestor folder names, "" at a root bucket
	Host    string // Derived from URL; "" when the URL does not parse
	Profile string // Owning profile name
}

// node mirrors one element of the bookmark tree. Chrome stores both folders
// and leaves in the same shape, discriminated by Type.
type node struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Children []node `json:"children"`
}

// bookmarkFile is the top-level document: a "roots" object with named
// buckets ("bookmark_bar", "other", "synced"). Buckets are decoded lazily
// because Chrome mixes non-tree bookkeeping values into the same object.
type bookmarkFile struct {
	Roots map[string]json.RawMessage `json:"roots"`
}

// parseFile reads and flattens one profile's bookmarks file.
func parseFile(path, profile string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}

	var doc bookmarkFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bookmarks (%d bytes): %w", len(data), err)
	}

	// Stable bucket order so successive rebuilds produce identical slices.
	buckets := make([]string, 0, len(doc.Roots))
	for name := range doc.Roots {
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)

	var entries []Entry
	for _, bucket := range buckets {
		var root node
		if err := json.Unmarshal(doc.Roots[bucket], &root); err != nil {
			// Non-tree bookkeeping values live alongside the buckets; skip.
			continue
		}
		entries = walk(root, "", profile, entries)
	}
	return entries, nil
}

// walk flattens a subtree depth-first, accumulating the slash-joined folder
// path. Leaves with an empty URL are dropped; untitled leaves take their
// URL as the title.
func walk(n node, folder, profile string, entries []Entry) []Entry {
	switch n.Type {
	case "url":
		if n.URL == "" {
			return entries
		}
		title := n.Name
		if title == "" {
			title = n.URL
		}
		return append(entries, Entry{
			Title:   title,
			URL:     n.URL,
			Folder:  folder,
			Host:    hostOf(n.URL),
			Profile: profile,
		})

	case "folder":
		child := folder
		// Root bucket names ("Bookmarks bar") are not part of the path.
		if folder != "" {
			child = folder + "/" + n.Name
		} else if n.Name != "" && !isRootBucket(n.Name) {
			child = n.Name
		}
		for _, c := range n.Children {
			entries = walk(c, child, profile, entries)
		}
	}
	return entries
}

// isRootBucket reports whether name is one of Chrome's fixed root folder
// display names, which are excluded from folder paths.
func isRootBucket(name string) bool {
	switch name {
	case "Bookmarks bar", "Other bookmarks", "Mobile bookmarks", "Synced bookmarks":
		return true
	}
	return false
}

// hostOf extracts the lowercased host from a URL, or "" if it cannot be
// parsed.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
