// Package picker implements the interactive choice picker TUI.
package picker

import (
	"context"

	"github.com/runger/beacon/internal/choice"
)

// Provider is the pull-based hook supplying choices to the picker.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Request describes what the picker wants from a Provider.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
	Query     string // Current query-box contents
	Limit     int    // Max items the picker can display
}

// Response carries choices back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Choices   []choice.Choice
}

// FetchFunc adapts a plain function to the Provider interface.
type FetchFunc func(ctx context.Context, req Request) (Response, error)

// Fetch implements Provider.
func (f FetchFunc) Fetch(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
