package cmd

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/beacon/internal/choice"
	"github.com/runger/beacon/internal/engine"
	"github.com/runger/beacon/internal/picker"
)

// historyFetchTimeout bounds one history-browse database read.
const historyFetchTimeout = time.Second

// runPicker runs the interactive picker and performs the accepted
// choice's action. history selects the exclusive history-browse mode.
func runPicker(history bool) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	lock, err := acquireLock(a.paths.LockFile())
	if err != nil {
		return fmt.Errorf("another beacon instance is running (%s)", a.paths.LockFile())
	}
	defer lock.release()

	// Live re-indexing for the lifetime of the picker.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := a.index.Watch(ctx); err != nil {
			a.logger.Warn("bookmark watch stopped", "error", err)
		}
	}()

	model := picker.New(picker.NewEngineProvider(a.engine),
		time.Duration(a.cfg.Search.DebounceMs)*time.Millisecond)

	// visible backs the dismissal watchdog of an exclusive session: it
	// flips false the moment the TUI returns, selection or not.
	var visible atomic.Bool
	visible.Store(true)

	var session *engine.Session
	if history {
		if a.selections == nil {
			return fmt.Errorf("history browse needs the selection log, which failed to open")
		}
		session = a.engine.EnterExclusive(historyQuery(a), visible.Load)
	}

	// The picker owns the terminal; logs and pipes keep stdout/stderr, so
	// the TUI runs on /dev/tty like any launcher overlay would.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)
	final, err := p.Run()
	visible.Store(false)
	if session != nil {
		session.Restore()
	}
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(picker.Model)
	if !ok {
		return fmt.Errorf("unexpected picker model type %T", final)
	}
	picked, accepted := m.Result()
	if !accepted {
		return nil
	}
	return a.engine.Select(picked, m.Query())
}

// historyQuery adapts the selection log into an exclusive-mode pipeline
// replacement. Browsing is read-only: every choice only pre-fills the
// query box, so nothing in history can re-run an action by accident.
func historyQuery(a *app) engine.QueryFunc {
	hp := picker.NewHistoryProvider(a.selections)
	return func(query string) []choice.Choice {
		ctx, cancel := context.WithTimeout(context.Background(), historyFetchTimeout)
		defer cancel()
		resp, err := hp.Fetch(ctx, picker.Request{Query: query, Limit: a.cfg.Search.MaxResults})
		if err != nil {
			a.logger.Warn("history browse fetch failed", "error", err)
			return nil
		}
		return resp.Choices
	}
}
