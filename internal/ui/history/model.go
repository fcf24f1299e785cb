package history

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hnguyen/codeassist/internal/history"
	"github.com/hnguyen/codeassist/internal/keys"
	"github.com/hnguyen/codeassist/internal/theme"
)

// HistoryCloseMsg signals the parent to close the history view.
type HistoryCloseMsg struct{}

// entriesLoadedMsg is sent when history entries have been loaded.
type entriesLoadedMsg struct {
	entries []history.Entry
	err     error
}

// Model is the suggestion history browser.
type Model struct {
	store       history.Store
	entries     []history.Entry
	selectedIdx int
	limit       int
	errMsg      string
	keys        *keys.KeyMap
	width       int
	height      int
}

// New creates a history view backed by the given store. A nil store
// renders a disabled notice.
func New(store history.Store, limit int, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  store,
		limit:  limit,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads entries from the store on first render.
func (m Model) Init() tea.Cmd {
	return m.loadEntries()
}

// loadEntries returns a command that fetches recent entries.
func (m Model) loadEntries() tea.Cmd {
	store := m.store
	limit := m.limit
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.ListEntries(context.Background(), limit)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// Update handles messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("loading history: %v", msg.err)
			return m, nil
		}
		m.entries = msg.entries
		if m.selectedIdx >= len(m.entries) {
			m.selectedIdx = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return HistoryCloseMsg{} }

		case "j", "down":
			if len(m.entries) > 0 {
				m.selectedIdx = (m.selectedIdx + 1) % len(m.entries)
			}
			return m, nil

		case "k", "up":
			if len(m.entries) > 0 {
				m.selectedIdx--
				if m.selectedIdx < 0 {
					m.selectedIdx = len(m.entries) - 1
				}
			}
			return m, nil

		case "r":
			return m, m.loadEntries()
		}
	}

	return m, nil
}

// View renders the history list with the selected entry's detail.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Suggestion History")

	var body string
	switch {
	case m.store == nil:
		body = theme.HelpStyle.Render("History is disabled in the configuration.")
	case m.errMsg != "":
		body = theme.ErrorStyle.Render(m.errMsg)
	case len(m.entries) == 0:
		body = theme.HelpStyle.Render("No suggestions recorded yet.")
	default:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderList(),
			"",
			m.renderDetail(),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// renderList draws one line per entry, newest first.
func (m Model) renderList() string {
	maxRows := m.height / 3
	if maxRows < 3 {
		maxRows = 3
	}

	var rows []string
	for i, e := range m.entries {
		if i >= maxRows {
			rows = append(rows, theme.HelpStyle.Render(
				fmt.Sprintf("… %d more", len(m.entries)-maxRows),
			))
			break
		}

		applied := " "
		if e.Applied {
			applied = "✓"
		}

		line := fmt.Sprintf(
			"%s %s  %-10s %s  %s",
			applied,
			e.CreatedAt.Local().Format("Jan 02 15:04"),
			e.Intention,
			e.FileName,
			truncate(e.Prompt, 40),
		)

		if i == m.selectedIdx {
			rows = append(rows, theme.SelectedItemStyle.Render(line))
		} else {
			rows = append(rows, theme.ListItemStyle.Render(line))
		}
	}

	return strings.Join(rows, "\n")
}

// renderDetail shows the selected entry's suggestion and confidence.
func (m Model) renderDetail() string {
	if m.selectedIdx >= len(m.entries) {
		return ""
	}
	e := m.entries[m.selectedIdx]

	confidence := fmt.Sprintf(
		"Confidence: %d%%", int(math.Round(e.Confidence*100)),
	)

	sections := []string{
		theme.ConfidenceStyle(e.Confidence).Render(confidence),
		theme.SuggestionStyle.Render(truncate(e.Suggestion, 400)),
	}
	if e.Explanation != "" {
		sections = append(sections, theme.HelpStyle.Render(truncate(e.Explanation, 200)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// SetSize updates the history view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
