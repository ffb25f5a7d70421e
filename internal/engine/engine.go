// Package engine owns the query-resolution pipeline: it aggregates choices
// from plugins and the command registry, ranks them, and records what the
// user picks.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/runger/beacon/internal/choice"
	"github.com/runger/beacon/internal/frecency"
	"github.com/runger/beacon/internal/plugin"
	"github.com/runger/beacon/internal/rank"
	"github.com/runger/beacon/internal/storage"
)

// TypeCommand tags the synthetic "jump to this command" choices.
const TypeCommand = "command"

// selectionLogTimeout bounds the best-effort selection-log write.
const selectionLogTimeout = 500 * time.Millisecond

// QueryFunc produces choices for a raw query. It is the shape of both the
// normal pipeline and an exclusive-mode replacement provider.
type QueryFunc func(query string) []choice.Choice

// Options configures an Engine.
type Options struct {
	Logger   *slog.Logger
	Frecency *frecency.Store   // required
	Pins     map[string]string // query prefix -> target display substring
	// Selections is the optional sqlite selection log; nil disables it.
	Selections *storage.Log
}

// Engine composes the command registry, ranking engine, entry store, and
// loaded plugins. All mutations happen on the single event context that
// drives query evaluation.
type Engine struct {
	logger     *slog.Logger
	registry   *plugin.Registry
	plugins    []plugin.Plugin
	ranker     *rank.Ranker
	frecency   *frecency.Store
	selections *storage.Log

	// override, when non-nil, replaces the whole pipeline (exclusive
	// mode). Atomic because the dismissal watchdog clears it from its own
	// goroutine.
	override atomic.Pointer[QueryFunc]
}

// New creates an engine. The frecency store must already be loaded.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		logger:     logger,
		registry:   plugin.NewRegistry(logger),
		frecency:   opts.Frecency,
		selections: opts.Selections,
	}
	e.ranker = rank.New(opts.Pins, e.frecency.Score)
	return e
}

// Registry exposes the command registry, mainly for plugins that
// re-register after a configuration change.
func (e *Engine) Registry() *plugin.Registry { return e.registry }

// Frecency exposes the entry store for the history commands.
func (e *Engine) Frecency() *frecency.Store { return e.frecency }

// Use loads a plugin: it joins the bare-provider set, and its keyword
// commands (if any) are registered.
func (e *Engine) Use(p plugin.Plugin) {
	e.plugins = append(e.plugins, p)
	if cp, ok := p.(plugin.CommandProvider); ok {
		e.registry.Register(p.ID(), cp.Commands())
	}
}

// Query resolves a raw query into a ranked choice list. An empty or
// whitespace-only query is the idle state and returns nil without any
// provider work.
func (e *Engine) Query(raw string) []choice.Choice {
	if fn := e.override.Load(); fn != nil {
		return (*fn)(raw)
	}
	return e.aggregate(raw)
}

// aggregate implements the normal pipeline: keyworded resolution, bare
// resolution, command-name suggestions, then ranking.
func (e *Engine) aggregate(raw string) []choice.Choice {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	words := strings.Fields(trimmed)
	firstWord := words[0]
	remainder := strings.Join(words[1:], " ")

	var choices []choice.Choice

	// Keyworded resolution: the first token addresses a registered command.
	if spec, ok := e.registry.Lookup(firstWord); ok {
		arg := remainder
		if arg == "" {
			arg = plugin.MatchAll
		}
		choices = append(choices, e.invoke("command:"+spec.Keyword, func() []choice.Choice {
			return spec.Handler(arg)
		})...)
	}

	// Bare resolution: every bare provider sees the entire original query,
	// so providers like the live bookmark search react to each keystroke.
	for _, p := range e.plugins {
		bp, ok := p.(plugin.BareProvider)
		if !ok {
			continue
		}
		choices = append(choices, e.invoke("bare:"+p.ID(), func() []choice.Choice {
			return bp.Bare(raw)
		})...)
	}

	// With only one token typed, suggest registered commands whose keyword
	// or name contains the query. Matching is literal substring matching;
	// the query is never interpreted as a pattern.
	if remainder == "" {
		choices = append(choices, e.commandSuggestions(trimmed)...)
	}

	e.ranker.Sort(choices, trimmed)
	return choices
}

// commandSuggestions returns synthetic "jump to this command" choices.
// Selecting one only pre-fills the query box with the keyword.
func (e *Engine) commandSuggestions(query string) []choice.Choice {
	folded := strings.ToLower(query)
	var out []choice.Choice
	for _, spec := range e.registry.List() {
		if !strings.Contains(spec.Keyword, folded) &&
			!strings.Contains(strings.ToLower(spec.Name), folded) {
			continue
		}
		out = append(out, choice.Choice{
			Text:     spec.Name,
			SubText:  spec.Description,
			Type:     TypeCommand,
			Plugin:   spec.PluginID,
			UUID:     choice.StableID(TypeCommand, spec.Keyword),
			AutoFill: spec.Keyword + " ",
		})
	}
	return out
}

// invoke runs one provider, converting a panic into zero contributions so
// a single plugin failure never aborts aggregation for the others.
func (e *Engine) invoke(name string, fn func() []choice.Choice) (out []choice.Choice) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("provider failed, skipped", "provider", name, "panic", r)
			out = nil
		}
	}()
	return fn()
}

// Select records the user's pick and performs its action. Frecency and the
// selection log are updated before the action runs, so ranking benefits
// even when the action itself fails.
func (e *Engine) Select(c choice.Choice, query string) error {
	e.frecency.Record(c.UUID)

	if e.selections != nil {
		ctx, cancel := context.WithTimeout(context.Background(), selectionLogTimeout)
		if err := e.selections.Append(ctx, storage.Selection{
			TsUnix: time.Now().Unix(),
			UUID:   c.UUID,
			Text:   c.Text,
			Type:   c.Type,
			Plugin: c.Plugin,
			Query:  query,
		}); err != nil {
			e.logger.Warn("selection log write failed", "error", err)
		}
		cancel()
	}

	if c.Action == nil {
		return nil
	}
	return c.Action()
}
