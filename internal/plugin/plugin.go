// Package plugin defines the capability interfaces plugins implement and
// the keyword command registry they register into.
package plugin

import "github.com/runger/beacon/internal/choice"

// MatchAll is the sentinel handed to a keyword handler when the user has
// typed the keyword with no argument; handlers treat it as "match
// everything".
const MatchAll = "*"

// Plugin is the minimal identity every plugin carries. Capabilities are
// optional and discovered by interface assertion.
type Plugin interface {
	ID() string
}

// BareProvider is implemented by plugins that want to contribute choices on
// every keystroke, without a keyword prefix. It receives the entire raw
// query as typed.
type BareProvider interface {
	Bare(query string) []choice.Choice
}

// CommandProvider is implemented by plugins that contribute keyword
// commands. Returned specs are registered wholesale; calling Register again
// for the same plugin replaces its previous set.
type CommandProvider interface {
	Commands() map[string]Spec
}

// Spec describes one keyword binding.
type Spec struct {
	// Keyword triggers the handler when it equals the query's first word
	// (case-insensitive). Filled in from the registration map key.
	Keyword string

	// Name and Description are shown for the synthetic "jump to command"
	// suggestion choices.
	Name        string
	Description string

	// Handler receives the remainder of the query (single-space re-joined)
	// or MatchAll when the remainder is empty.
	Handler func(arg string) []choice.Choice

	// PluginID identifies the owning plugin. Filled in by the registry.
	PluginID string
}
