// Package rank orders aggregated choices with a five-tier lexicographic
// comparator: priority tier, pinned-prefix match, query-prefix match,
// frecency, then case-folded alphabetical as the final tiebreak.
package rank

import (
	"sort"
	"strings"

	"github.com/runger/beacon/internal/choice"
)

// HighPriorityThreshold is the base score at or above which a choice enters
// the priority tier and ranks before everything else. It lets a single
// provider (for example an arithmetic evaluator) guarantee top placement
// for an unambiguous result.
const HighPriorityThreshold = 50000

// ScoreFunc looks up the frecency score (last-used Unix seconds) for an
// item identifier, returning 0 for untracked items.
type ScoreFunc func(id string) int64

// Ranker applies the ranking comparator. The pin table is the user's
// prefix → target-name-substring overrides, read-only at ranking time.
type Ranker struct {
	pins   map[string]string // folded prefix -> folded target substring
	scores ScoreFunc
}

// New creates a Ranker. pins may be nil; scores may be nil to disable
// frecency entirely.
func New(pins map[string]string, scores ScoreFunc) *Ranker {
	folded := make(map[string]string, len(pins))
	for prefix, target := range pins {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		target = strings.ToLower(strings.TrimSpace(target))
		if prefix == "" || target == "" {
			continue
		}
		folded[prefix] = target
	}
	if scores == nil {
		scores = func(string) int64 { return 0 }
	}
	return &Ranker{pins: folded, scores: scores}
}

// Sort reorders choices in place for the given query.
//
// All five dimensions are derived once per choice before sorting, never
// inside the comparator, which keeps the relation a strict weak ordering
// and the sort O(n log n) in comparisons over cheap precomputed fields.
func (r *Ranker) Sort(choices []choice.Choice, query string) {
	foldedQuery := strings.ToLower(strings.TrimSpace(query))

	for i := range choices {
		c := &choices[i]
		folded := strings.ToLower(c.Text)
		c.SortKey = folded
		c.PrefixMatch = foldedQuery != "" && strings.HasPrefix(folded, foldedQuery)
		c.PinnedMatch = r.pinned(foldedQuery, folded)
		c.FrecencyScore = 0
		if c.UUID != "" {
			c.FrecencyScore = r.scores(c.UUID)
		}
	}

	sort.SliceStable(choices, func(i, j int) bool {
		return less(&choices[i], &choices[j])
	})
}

// pinned reports whether the query activates a pin rule that targets this
// choice: the folded query starts with a configured prefix and the folded
// display text contains the prefix's target substring.
func (r *Ranker) pinned(foldedQuery, foldedText string) bool {
	if foldedQuery == "" {
		return false
	}
	for prefix, target := range r.pins {
		if strings.HasPrefix(foldedQuery, prefix) && strings.Contains(foldedText, target) {
			return true
		}
	}
	return false
}

// less is the tier comparator. Boolean tiers sort true before false; ties
// fall through to the next tier.
func less(a, b *choice.Choice) bool {
	aPriority := a.Score >= HighPriorityThreshold
	bPriority := b.Score >= HighPriorityThreshold
	if aPriority != bPriority {
		return aPriority
	}
	if a.PinnedMatch != b.PinnedMatch {
		return a.PinnedMatch
	}
	if a.PrefixMatch != b.PrefixMatch {
		return a.PrefixMatch
	}
	if a.FrecencyScore != b.FrecencyScore {
		return a.FrecencyScore > b.FrecencyScore
	}
	return a.SortKey < b.SortKey
}
