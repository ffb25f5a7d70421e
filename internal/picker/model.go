package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/beacon/internal/choice"
)

// pickerState is the model's state machine.
type pickerState int

const (
	stateIdle    pickerState = iota // Empty query, nothing to show
	stateLoading                    // Fetch in progress
	stateLoaded                     // Choices on screen
	stateEmpty                      // Fetch succeeded with 0 choices
	stateError                      // Fetch failed
)

// fetchDoneMsg is sent when an async Provider.Fetch completes.
type fetchDoneMsg struct {
	requestID uint64
	choices   []choice.Choice
	err       error
}

// debounceMsg fires when the debounce timer expires.
type debounceMsg struct {
	id uint64 // Must match the current debounce generation to be accepted
}

// Model is the Bubble Tea model for the beacon picker.
type Model struct {
	provider Provider
	debounce time.Duration

	input     textinput.Model
	state     pickerState
	choices   []choice.Choice
	selection int

	width  int
	height int
	err    error

	// requestID is a monotonic counter; responses for stale IDs are
	// discarded so a slow fetch never overwrites a fresher one.
	requestID  uint64
	debounceID uint64

	cancelFetch context.CancelFunc

	// result holds the accepted choice after Enter; ok distinguishes a
	// real selection from dismissal.
	result choice.Choice
	ok     bool
}

// New creates a picker model over the given provider.
func New(provider Provider, debounce time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to search"
	ti.Focus()

	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	return Model{
		provider:  provider,
		debounce:  debounce,
		input:     ti,
		state:     stateIdle,
		selection: -1,
	}
}

// Result returns the accepted choice and whether one was accepted at all.
func (m Model) Result() (choice.Choice, bool) {
	return m.result, m.ok
}

// Query returns the current query-box contents.
func (m Model) Query() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil // Stale timer
		}
		return m, m.startFetch()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection < 0 || m.selection >= len(m.choices) {
			return m, nil
		}
		picked := m.choices[m.selection]
		if picked.AutoFill != "" {
			// A jump-to-command choice: replace the query and keep going.
			m.input.SetValue(picked.AutoFill)
			m.input.CursorEnd()
			return m, m.startFetch()
		}
		m.result = picked
		m.ok = true
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		if m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.selection < len(m.choices)-1 {
			m.selection++
		}
		return m, nil
	}

	// Everything else edits the query box.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.startDebounce())
	}
	return m, cmd
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil // Stale response
	}

	if msg.err != nil {
		m.state = stateError
		m.err = msg.err
		m.choices = nil
		m.selection = -1
		return m, nil
	}

	m.choices = msg.choices
	if len(m.choices) == 0 {
		m.state = stateEmpty
		m.selection = -1
	} else {
		m.state = stateLoaded
		if m.selection < 0 {
			m.selection = 0
		}
		if m.selection >= len(m.choices) {
			m.selection = len(m.choices) - 1
		}
	}
	return m, nil
}

// startDebounce restarts the keystroke coalescing window; only the timer
// matching the latest generation triggers a fetch.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startFetch cancels any in-flight fetch and asks the provider for choices
// matching the current query.
func (m *Model) startFetch() tea.Cmd {
	m.cancelInflight()

	query := m.input.Value()
	if strings.TrimSpace(query) == "" {
		m.state = stateIdle
		m.choices = nil
		m.selection = -1
		return nil
	}

	m.requestID++
	m.state = stateLoading

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	req := Request{
		RequestID: reqID,
		Query:     query,
		Limit:     m.listHeight(),
	}
	p := m.provider
	return func() tea.Msg {
		resp, err := p.Fetch(ctx, req)
		if err != nil {
			return fetchDoneMsg{requestID: reqID, err: err}
		}
		return fetchDoneMsg{requestID: reqID, choices: resp.Choices}
	}
}

func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

// listHeight returns the number of visible list rows.
func (m Model) listHeight() int {
	const chrome = 2 // query line + status line
	h := m.height - chrome
	if h < 1 {
		h = 15
	}
	return h
}

// --- View rendering ---

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewContent())
	return b.String()
}

func (m Model) viewContent() string {
	switch m.state {
	case stateIdle:
		return dimStyle.Render("…")
	case stateLoading:
		return dimStyle.Render("Loading…")
	case stateEmpty:
		return dimStyle.Render("No matches")
	case stateError:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case stateLoaded:
		return m.viewList()
	}
	return ""
}

func (m Model) viewList() string {
	var b strings.Builder
	maxItems := m.listHeight()
	for i, c := range m.choices {
		if i >= maxItems {
			break
		}

		avail := m.width - 4
		if avail <= 0 {
			avail = 76
		}

		// Truncate plain text before styling so escape codes are never cut.
		text := oneLine(stripANSI(c.Text))
		text = truncate(text, avail)
		line := text
		if rest := avail - lipgloss.Width(text) - 2; c.SubText != "" && rest > 3 {
			sub := truncate(oneLine(stripANSI(c.SubText)), rest)
			line += "  " + subStyle.Render(sub)
		}

		if i == m.selection {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		if i < len(m.choices)-1 && i < maxItems-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
