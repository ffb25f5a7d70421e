package picker

import (
	"context"

	"github.com/runger/beacon/internal/engine"
)

// EngineProvider serves the normal resolution pipeline to the picker.
// Query evaluation is synchronous and bounded by the keystroke-to-result
// latency budget, so Fetch never blocks on I/O beyond the in-memory scans.
type EngineProvider struct {
	engine *engine.Engine
}

var _ Provider = (*EngineProvider)(nil)

// NewEngineProvider wraps an engine for the picker.
func NewEngineProvider(e *engine.Engine) *EngineProvider {
	return &EngineProvider{engine: e}
}

// Fetch evaluates the query and truncates to the picker's display limit.
func (p *EngineProvider) Fetch(_ context.Context, req Request) (Response, error) {
	choices := p.engine.Query(req.Query)
	if req.Limit > 0 && len(choices) > req.Limit {
		choices = choices[:req.Limit]
	}
	return Response{RequestID: req.RequestID, Choices: choices}, nil
}
