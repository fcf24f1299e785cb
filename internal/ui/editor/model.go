package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	buf "github.com/hnguyen/codeassist/internal/editor"
	"github.com/hnguyen/codeassist/internal/keys"
	"github.com/hnguyen/codeassist/internal/theme"
)

// Model is the read-only code view for the open buffer.
type Model struct {
	buffer   *buf.Buffer
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a code view for the given buffer.
func New(buffer *buf.Buffer, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)

	m := Model{
		buffer:   buffer,
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh re-renders the buffer content into the viewport. Call after the
// buffer changes (e.g. an applied suggestion).
func (m *Model) Refresh() {
	if m.buffer == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderCode())
}

// Update handles scrolling for the code view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the code view with a file title line.
func (m Model) View() string {
	title := m.renderTitle()
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View())
}

// renderTitle builds the file name line with language and dirty markers.
func (m Model) renderTitle() string {
	if m.buffer == nil {
		return theme.HelpStyle.Render("no file open")
	}

	name := m.buffer.FileName()
	if m.buffer.Dirty() {
		name += " *"
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(name)

	lang := theme.LanguageStyle(m.buffer.Language()).
		Render(m.buffer.Language())

	lines := theme.HelpStyle.Render(
		fmt.Sprintf("%d lines", m.buffer.LineCount()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", lang, " ", lines)
}

// renderCode draws the buffer with right-aligned line numbers.
func (m Model) renderCode() string {
	numStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)

	lines := strings.Split(m.buffer.Content(), "\n")
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = numStyle.Render(fmt.Sprintf("%4d", i+1)) + " " + line
	}

	return strings.Join(rendered, "\n")
}

// SetSize updates the code view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
