package rank

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/beacon/internal/choice"
)

func titles(choices []choice.Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Text
	}
	return out
}

func TestPriorityTierBeatsEverything(t *testing.T) {
	now := time.Now().Unix()
	scores := map[string]int64{"recent": now}
	r := New(nil, func(id string) int64 { return scores[id] })

	choices := []choice.Choice{
		{Text: "aaa recently used", UUID: "recent", Score: 10000},
		{Text: "zzz calculator result", Score: 60000},
	}
	r.Sort(choices, "zzz")

	// Base score 60000 sits in the priority tier; neither frecency nor
	// alphabetical order can displace it.
	assert.Equal(t, []string{"zzz calculator result", "aaa recently used"}, titles(choices))
}

func TestPinnedBeatsFrecency(t *testing.T) {
	scores := map[string]int64{"calc": time.Now().Unix()}
	r := New(map[string]string{"cb": "Chrome"}, func(id string) int64 { return scores[id] })

	choices := []choice.Choice{
		{Text: "Calculator", UUID: "calc"},
		{Text: "Chrome", UUID: "chrome"},
	}
	r.Sort(choices, "cb anything")

	assert.Equal(t, []string{"Chrome", "Calculator"}, titles(choices))
}

func TestQueryPrefixBeatsFrecency(t *testing.T) {
	scores := map[string]int64{"used": 1700000000}
	r := New(nil, func(id string) int64 { return scores[id] })

	choices := []choice.Choice{
		{Text: "Zim note", UUID: "used"},
		{Text: "Generic thing", UUID: "other"},
	}
	r.Sort(choices, "gen")

	assert.Equal(t, []string{"Generic thing", "Zim note"}, titles(choices))
}

func TestFrecencyOrdersByRecency(t *testing.T) {
	scores := map[string]int64{"old": 1000, "new": 2000}
	r := New(nil, func(id string) int64 { return scores[id] })

	choices := []choice.Choice{
		{Text: "alpha", UUID: "old"},
		{Text: "beta", UUID: "new"},
	}
	r.Sort(choices, "xyz")

	assert.Equal(t, []string{"beta", "alpha"}, titles(choices))
}

func TestChoiceWithoutUUIDRanksAsNeverUsed(t *testing.T) {
	r := New(nil, func(id string) int64 { return 999999 })

	choices := []choice.Choice{
		{Text: "bare"},
		{Text: "tracked", UUID: "x"},
	}
	r.Sort(choices, "")

	assert.Equal(t, []string{"tracked", "bare"}, titles(choices))
}

func TestAlphabeticalTiebreakIsCaseFolded(t *testing.T) {
	r := New(nil, nil)

	choices := []choice.Choice{
		{Text: "banana"},
		{Text: "Apple"},
		{Text: "cherry"},
	}
	r.Sort(choices, "")

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(choices))
}

// TestStrictTotalOrder shuffles a fixed candidate set and verifies the sort
// converges to the same total order from any starting permutation.
func TestStrictTotalOrder(t *testing.T) {
	scores := map[string]int64{"a": 500, "b": 900}
	r := New(map[string]string{"pin": "delta"}, func(id string) int64 { return scores[id] })

	base := []choice.Choice{
		{Text: "alpha", UUID: "a"},
		{Text: "beta", UUID: "b"},
		{Text: "gamma", Score: 60000},
		{Text: "delta match"},
		{Text: "pinpoint"},
	}

	rng := rand.New(rand.NewSource(42))
	var want []string
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]choice.Choice, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		r.Sort(shuffled, "pin")
		got := titles(shuffled)
		if want == nil {
			want = got
			continue
		}
		require.Equal(t, want, got, "order must not depend on input permutation")
	}

	// Priority tier first, then the pinned match, then the prefix match,
	// then frecency, then alphabetical.
	assert.Equal(t, []string{"gamma", "delta match", "pinpoint", "beta", "alpha"}, want)
}

func TestPinTableFoldsCase(t *testing.T) {
	r := New(map[string]string{"CB": "chrome"}, nil)

	choices := []choice.Choice{
		{Text: "Safari"},
		{Text: "Google Chrome"},
	}
	r.Sort(choices, "Cb tabs")

	assert.Equal(t, "Google Chrome", choices[0].Text)
}

func TestEmptyQueryHasNoPrefixOrPinMatches(t *testing.T) {
	r := New(map[string]string{"": "anything", "x": ""}, nil)

	choices := []choice.Choice{{Text: "b"}, {Text: "a"}}
	r.Sort(choices, "   ")

	assert.Equal(t, []string{"a", "b"}, titles(choices))
	assert.False(t, choices[0].PrefixMatch)
	assert.False(t, choices[0].PinnedMatch)
}
