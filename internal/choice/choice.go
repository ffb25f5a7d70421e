// Package choice defines the candidate result type shared by all beacon
// providers and the ranking engine.
package choice

import "github.com/google/uuid"

// Choice is a single actionable candidate produced for a query. Choices are
// created fresh on every evaluation and never persisted; only the UUID is
// durable, as the key into the usage-history file.
type Choice struct {
	Text    string // Primary display text
	SubText string // Secondary line shown under or beside Text
	Type    string // Opaque type tag ("bookmark", "app", "command", ...)
	Plugin  string // Owning plugin identifier

	// UUID is a stable identifier used for frecency tracking. Choices
	// without one are ranked as never used.
	UUID string

	// Score is the provider-assigned base score. Values at or above
	// rank.HighPriorityThreshold place the choice in the priority tier.
	Score int

	// URL is the navigation payload for URL-typed choices.
	URL string

	// AutoFill, when non-empty, means selecting this choice only replaces
	// the query-box contents instead of performing an action.
	AutoFill string

	// Action performs the choice. May be nil for AutoFill choices.
	Action func() error

	// Ranking fields, derived by rank.Sort immediately before sorting and
	// meaningless outside of it.
	PrefixMatch   bool
	PinnedMatch   bool
	FrecencyScore int64
	SortKey       string
}

// beaconNS namespaces deterministic UUIDs so identifiers stay stable across
// runs for the same logical item.
var beaconNS = uuid.MustParse("8a6e1f1c-09e6-4d2e-9b46-54b5a1edc1d0")

// StableID derives a deterministic UUID string for a logical item key such
// as a bookmark URL or a command name. The same key always yields the same
// identifier, which is what keeps frecency attached to an item across
// re-indexing.
func StableID(kind, key string) string {
	return uuid.NewSHA1(beaconNS, []byte(kind+"\x00"+key)).String()
}
