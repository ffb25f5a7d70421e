package bookmarks

import (
	"sort"
	"strings"
)

// Per-field weights for a token substring match, plus a fixed bonus when a
// token equals the host exactly. Title matches dominate, then host, full
// URL, and folder path.
const (
	weightTitle  = 10
	weightHost   = 6
	weightURL    = 3
	weightFolder = 1

	hostExactBonus = 8
)

// scored pairs an entry with its query score for sorting.
type scored struct {
	entry Entry
	score int
}

// Search tokenizes query on whitespace and returns matching entries sorted
// by score descending, case-folded title ascending as the tiebreak, and
// truncated to the configured maximum. Entries scoring 0 are excluded.
func (idx *Index) Search(query string) []Entry {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	entries := idx.Entries()
	matches := make([]scored, 0, 32)
	for _, e := range entries {
		if s := scoreEntry(e, tokens); s > 0 {
			matches = append(matches, scored{entry: e, score: s})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return strings.ToLower(matches[i].entry.Title) < strings.ToLower(matches[j].entry.Title)
	})

	if len(matches) > idx.maxResults {
		matches = matches[:idx.maxResults]
	}

	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// scoreEntry sums the per-token field weights for one entry.
func scoreEntry(e Entry, tokens []string) int {
	title := strings.ToLower(e.Title)
	rawURL := strings.ToLower(e.URL)
	folder := strings.ToLower(e.Folder)
	// Host is already folded at parse time.

	score := 0
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += weightTitle
		}
		if e.Host != "" && strings.Contains(e.Host, tok) {
			score += weightHost
		}
		if strings.Contains(rawURL, tok) {
			score += weightURL
		}
		if folder != "" && strings.Contains(folder, tok) {
			score += weightFolder
		}
		if e.Host != "" && e.Host == tok {
			score += hostExactBonus
		}
	}
	return score
}
