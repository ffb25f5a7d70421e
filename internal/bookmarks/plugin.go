package bookmarks

import (
	"github.com/runger/beacon/internal/choice"
	"github.com/runger/beacon/internal/plugin"
)

// PluginID is the registry owner identifier for the bookmarks plugin.
const PluginID = "bookmarks"

// TypeBookmark is the choice type tag for bookmark results.
const TypeBookmark = "bookmark"

// DefaultKeyword triggers the keyworded bookmark search.
const DefaultKeyword = "bm"

// Plugin adapts the index into the launcher's provider capabilities: a
// bare provider reacting to every keystroke and a keyword command.
type Plugin struct {
	index   *Index
	keyword string
	open    func(url string) error
}

var (
	_ plugin.BareProvider    = (*Plugin)(nil)
	_ plugin.CommandProvider = (*Plugin)(nil)
)

// NewPlugin wires the index to the launcher. keyword defaults to
// DefaultKeyword; open performs the URL-open action on selection.
func NewPlugin(index *Index, keyword string, open func(url string) error) *Plugin {
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return &Plugin{index: index, keyword: keyword, open: open}
}

// ID implements plugin.Plugin.
func (p *Plugin) ID() string { return PluginID }

// Bare performs a live search with the whole raw query, so bookmark hits
// surface without any keyword prefix.
func (p *Plugin) Bare(query string) []choice.Choice {
	return p.toChoices(p.index.Search(query))
}

// Commands registers the keyworded search. An empty argument (the
// match-all sentinel) lists the whole index up to the result cap.
func (p *Plugin) Commands() map[string]plugin.Spec {
	return map[string]plugin.Spec{
		p.keyword: {
			Name:        "Bookmarks",
			Description: "Search browser bookmarks",
			Handler: func(arg string) []choice.Choice {
				if arg == plugin.MatchAll {
					entries := p.index.Entries()
					if len(entries) > p.index.maxResults {
						entries = entries[:p.index.maxResults]
					}
					return p.toChoices(entries)
				}
				return p.toChoices(p.index.Search(arg))
			},
		},
	}
}

func (p *Plugin) toChoices(entries []Entry) []choice.Choice {
	choices := make([]choice.Choice, 0, len(entries))
	for _, e := range entries {
		e := e
		sub := e.URL
		if e.Folder != "" {
			sub = e.Folder + " · " + e.URL
		}
		choices = append(choices, choice.Choice{
			Text:    e.Title,
			SubText: sub,
			Type:    TypeBookmark,
			Plugin:  PluginID,
			UUID:    choice.StableID(TypeBookmark, e.Profile+"\x00"+e.URL),
			URL:     e.URL,
			Action: func() error {
				return p.open(e.URL)
			},
		})
	}
	return choices
}
