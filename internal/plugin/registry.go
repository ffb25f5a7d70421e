package plugin

import (
	"log/slog"
	"sort"
	"strings"
)

// Registry holds the keyword → command bindings contributed by plugins.
// It is rebuilt from scratch each process run as plugins load, and must
// only be mutated from the engine's event context.
type Registry struct {
	logger    *slog.Logger
	byKeyword map[string]*Spec // key is the case-folded keyword
	order     []*Spec          // registration order for List
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:    logger,
		byKeyword: make(map[string]*Spec),
	}
}

// Register replaces all entries owned by pluginID with the given set, then
// inserts them. A keyword already owned by a different plugin is never
// overwritten: the colliding entry is dropped with a warning.
//
// Re-registering with the same pluginID (for example after a provider-table
// configuration change) is therefore idempotent for that plugin.
func (r *Registry) Register(pluginID string, commands map[string]Spec) {
	r.removeOwned(pluginID)

	// Map iteration order is random; sort keywords so repeated registration
	// yields a stable List order.
	keywords := make([]string, 0, len(commands))
	for kw := range commands {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		folded := strings.ToLower(strings.TrimSpace(kw))
		if folded == "" {
			r.logger.Warn("ignoring empty keyword", "plugin", pluginID)
			continue
		}
		if existing, ok := r.byKeyword[folded]; ok {
			r.logger.Warn("keyword collision, entry dropped",
				"keyword", folded, "plugin", pluginID, "owner", existing.PluginID)
			continue
		}

		spec := commands[kw]
		spec.Keyword = folded
		spec.PluginID = pluginID
		entry := &spec
		r.byKeyword[folded] = entry
		r.order = append(r.order, entry)
	}
}

// Unregister removes all entries owned by pluginID.
func (r *Registry) Unregister(pluginID string) {
	r.removeOwned(pluginID)
}

// Lookup resolves a query word to its command spec, case-insensitively.
func (r *Registry) Lookup(word string) (Spec, bool) {
	entry, ok := r.byKeyword[strings.ToLower(word)]
	if !ok {
		return Spec{}, false
	}
	return *entry, true
}

// List returns all registered specs in registration order.
func (r *Registry) List() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, entry := range r.order {
		out = append(out, *entry)
	}
	return out
}

func (r *Registry) removeOwned(pluginID string) {
	kept := r.order[:0]
	for _, entry := range r.order {
		if entry.PluginID == pluginID {
			delete(r.byKeyword, entry.Keyword)
			continue
		}
		kept = append(kept, entry)
	}
	r.order = kept
}
