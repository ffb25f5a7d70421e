package apps

import (
	"github.com/runger/beacon/internal/choice"
	"github.com/runger/beacon/internal/plugin"
)

// PluginID is the registry owner identifier for the apps plugin.
const PluginID = "apps"

// TypeApp is the choice type tag for installed-command results.
const TypeApp = "app"

// DefaultKeyword triggers the keyworded app search.
const DefaultKeyword = "run"

// bareLimit caps how many app choices the bare provider contributes per
// keystroke; keyworded search uses the same cap.
const bareLimit = 20

// Plugin serves installed commands as choices, both bare and under the
// "run" keyword.
type Plugin struct {
	catalog *Catalog
	keyword string
	launch  func(path string) error
}

var (
	_ plugin.BareProvider    = (*Plugin)(nil)
	_ plugin.CommandProvider = (*Plugin)(nil)
)

// NewPlugin wires the catalog to the launcher; launch starts the selected
// executable.
func NewPlugin(catalog *Catalog, keyword string, launch func(path string) error) *Plugin {
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return &Plugin{catalog: catalog, keyword: keyword, launch: launch}
}

// ID implements plugin.Plugin.
func (p *Plugin) ID() string { return PluginID }

// Bare matches the raw query against command names on every keystroke.
func (p *Plugin) Bare(query string) []choice.Choice {
	return p.toChoices(p.catalog.Match(query, bareLimit))
}

// Commands registers the keyworded launcher.
func (p *Plugin) Commands() map[string]plugin.Spec {
	return map[string]plugin.Spec{
		p.keyword: {
			Name:        "Run",
			Description: "Launch an installed command",
			Handler: func(arg string) []choice.Choice {
				if arg == plugin.MatchAll {
					return p.toChoices(p.catalog.All(bareLimit))
				}
				return p.toChoices(p.catalog.Match(arg, bareLimit))
			},
		},
	}
}

func (p *Plugin) toChoices(apps []App) []choice.Choice {
	choices := make([]choice.Choice, 0, len(apps))
	for _, a := range apps {
		a := a
		choices = append(choices, choice.Choice{
			Text:    a.Name,
			SubText: a.Path,
			Type:    TypeApp,
			Plugin:  PluginID,
			UUID:    choice.StableID(TypeApp, a.Name),
			Action: func() error {
				return p.launch(a.Path)
			},
		})
	}
	return choices
}
