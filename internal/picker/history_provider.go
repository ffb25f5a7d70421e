package picker

import (
	"context"
	"time"

	"github.com/runger/beacon/internal/choice"
	"github.com/runger/beacon/internal/storage"
)

// HistoryProvider serves the selection log for the exclusive history-browse
// mode. Selecting an item only pre-fills the query box with the recorded
// text, so browsing never re-runs an action by accident.
type HistoryProvider struct {
	log *storage.Log
}

var _ Provider = (*HistoryProvider)(nil)

// NewHistoryProvider wraps the selection log.
func NewHistoryProvider(log *storage.Log) *HistoryProvider {
	return &HistoryProvider{log: log}
}

// Fetch returns the newest selections matching the query as a substring.
func (p *HistoryProvider) Fetch(ctx context.Context, req Request) (Response, error) {
	rows, err := p.log.Recent(ctx, req.Query, req.Limit)
	if err != nil {
		return Response{}, err
	}

	choices := make([]choice.Choice, 0, len(rows))
	for _, row := range rows {
		when := time.Unix(row.TsUnix, 0).Format("2006-01-02 15:04")
		choices = append(choices, choice.Choice{
			Text:     row.Text,
			SubText:  when + " · " + row.Plugin,
			Type:     row.Type,
			Plugin:   row.Plugin,
			AutoFill: row.Text,
		})
	}
	return Response{RequestID: req.RequestID, Choices: choices}, nil
}
