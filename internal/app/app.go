package app

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	aiservice "github.com/hnguyen/codeassist/internal/ai"
	"github.com/hnguyen/codeassist/internal/assist"
	"github.com/hnguyen/codeassist/internal/credential"
	"github.com/hnguyen/codeassist/internal/editor"
	"github.com/hnguyen/codeassist/internal/history"
	"github.com/hnguyen/codeassist/internal/keys"
	"github.com/hnguyen/codeassist/internal/model"
	"github.com/hnguyen/codeassist/internal/ui"
	"github.com/hnguyen/codeassist/internal/ui/command"
	editorview "github.com/hnguyen/codeassist/internal/ui/editor"
	helpview "github.com/hnguyen/codeassist/internal/ui/help"
	historyview "github.com/hnguyen/codeassist/internal/ui/history"
	settingsview "github.com/hnguyen/codeassist/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewEditor ViewState = iota
	ViewAssist
	ViewHistory
	ViewSettings
	ViewHelp
	ViewCommand
)

// historySavedMsg carries the id of a freshly recorded suggestion so a
// later apply can flag it.
type historySavedMsg struct {
	id  string
	err error
}

// bufferSavedMsg reports the outcome of writing the buffer to disk.
type bufferSavedMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// the open buffer, and the suggestion history store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	cfg        *model.AppConfig
	configPath string
	buffer     *editor.Buffer
	store      history.Store
	keys       *keys.KeyMap

	editorView   editorview.Model
	assistView   assist.Model
	historyView  historyview.Model
	settingsView settingsview.Model
	helpView     helpview.Model
	commandView  command.Model

	// lastEntryID is the history row for the most recent response.
	lastEntryID string

	ready     bool
	statusMsg string
}

// New creates the root application model. The store may be nil when
// history is disabled.
func New(
	buffer *editor.Buffer,
	cfg *model.AppConfig,
	configPath string,
	store history.Store,
) Model {
	k := keys.DefaultKeyMap()
	suggester := loadSuggester(cfg)

	assistView := assist.New(suggester, k, 80, 24)
	assistView.SetCanApply(true)

	return Model{
		currentView:  ViewEditor,
		cfg:          cfg,
		configPath:   configPath,
		buffer:       buffer,
		store:        store,
		keys:         k,
		editorView:   editorview.New(buffer, k, 80, 24),
		assistView:   assistView,
		historyView:  historyview.New(store, cfg.History.Limit, k, 80, 24),
		settingsView: settingsview.New(cfg, configPath, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
	}
}

// loadSuggester builds the AI backend from the environment variable or
// system keyring. Returns nil when no key is available.
func loadSuggester(cfg *model.AppConfig) aiservice.Suggester {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		var err error
		apiKey, err = credential.Get(credential.APIKeyName)
		if err != nil || apiKey == "" {
			return nil
		}
	}

	return aiservice.New(apiKey, cfg.AI)
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.editorView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.editorView.SetSize(contentWidth, contentHeight)
		m.assistView.SetSize(contentWidth, contentHeight)
		m.historyView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case assist.CloseMsg:
		m.assistView.Reset()
		m.currentView = ViewEditor
		return m, nil

	case assist.ResultMsg:
		var cmd tea.Cmd
		m.assistView, cmd = m.assistView.Update(msg)
		if msg.Err == nil && msg.Response != nil {
			// The previous entry id no longer matches the current
			// response. It stays empty until this response's save is
			// acknowledged; an apply in that window skips the flag
			// rather than marking the wrong row.
			m.lastEntryID = ""
			return m, tea.Batch(cmd, m.saveHistory(msg))
		}
		return m, cmd

	case assist.ApplyMsg:
		m.buffer.Replace(msg.Suggestion)
		m.editorView.Refresh()
		m.assistView.Reset()
		m.currentView = ViewEditor
		m.statusMsg = "suggestion applied (ctrl+s to save)"
		return m, m.markApplied()

	case historySavedMsg:
		if msg.err == nil {
			m.lastEntryID = msg.id
		}
		return m, nil

	case bufferSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = "saved"
			m.editorView.Refresh()
		}
		return m, nil

	case historyview.HistoryCloseMsg:
		m.currentView = ViewEditor
		return m, nil

	case settingsview.SettingsDoneMsg:
		m.currentView = ViewEditor
		return m, nil

	case settingsview.SettingsSavedMsg:
		m.cfg = msg.Config
		m.assistView.SetSuggester(loadSuggester(m.cfg))
		m.currentView = ViewEditor
		m.statusMsg = "settings saved"
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.MouseMsg:
		if m.currentView == ViewAssist {
			// Mouse coordinates are terminal-global; shift into the
			// content area the dialog is rendered in.
			msg.Y -= m.layout.HeaderHeight
			var cmd tea.Cmd
			m.assistView, cmd = m.assistView.Update(msg)
			return m, cmd
		}
		return m.updateActiveView(msg)

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewEditor {
				return m, tea.Quit
			}

		case "?":
			// Do not intercept when a view owns text input
			if m.currentView == ViewAssist ||
				m.currentView == ViewSettings ||
				m.currentView == ViewCommand {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			if m.currentView == ViewAssist || m.currentView == ViewSettings {
				break
			}
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case "a":
			if m.currentView == ViewEditor {
				return m.openAssist()
			}

		case "h":
			if m.currentView == ViewEditor {
				m.previousView = m.currentView
				m.currentView = ViewHistory
				return m, m.historyView.Init()
			}

		case "s":
			if m.currentView == ViewEditor {
				m.previousView = m.currentView
				m.currentView = ViewSettings
				return m, m.settingsView.Init()
			}

		case "ctrl+s":
			if m.currentView == ViewEditor {
				return m, m.saveBuffer()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// openAssist raises the assistant dialog over the current buffer.
func (m Model) openAssist() (tea.Model, tea.Cmd) {
	m.assistView.SetTarget(
		m.buffer.Content(),
		m.buffer.Language(),
		m.buffer.FileName(),
	)
	m.previousView = m.currentView
	m.currentView = ViewAssist
	m.statusMsg = ""
	return m, m.assistView.Focus()
}

// saveHistory records a received suggestion when the store is available.
func (m Model) saveHistory(msg assist.ResultMsg) tea.Cmd {
	if m.store == nil || !m.cfg.History.Enabled {
		return nil
	}

	store := m.store
	entry := history.Entry{
		FileName:    msg.Request.FileName,
		Language:    msg.Request.Language,
		Intention:   string(msg.Intention),
		Prompt:      msg.Request.Prompt,
		Suggestion:  msg.Response.Suggestion,
		Explanation: msg.Response.Explanation,
		Confidence:  msg.Response.Confidence,
	}

	return func() tea.Msg {
		id, err := store.SaveEntry(context.Background(), entry)
		return historySavedMsg{id: id, err: err}
	}
}

// markApplied flags the most recent history entry as applied. An empty
// lastEntryID means the entry's save has not been acknowledged yet; the
// flag is skipped rather than guessed.
func (m Model) markApplied() tea.Cmd {
	if m.store == nil || m.lastEntryID == "" {
		return nil
	}

	store := m.store
	id := m.lastEntryID
	return func() tea.Msg {
		// The applied flag is best effort; failures only affect the
		// history listing.
		_ = store.MarkApplied(context.Background(), id)
		return nil
	}
}

// saveBuffer writes the buffer to disk.
func (m Model) saveBuffer() tea.Cmd {
	buffer := m.buffer
	return func() tea.Msg {
		return bufferSavedMsg{err: buffer.Save()}
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "assist", "ai", "ask":
		return m.openAssist()
	case "history":
		m.previousView = m.currentView
		m.currentView = ViewHistory
		return m, m.historyView.Init()
	case "settings", "config":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return m, m.settingsView.Init()
	case "save", "w":
		return m, m.saveBuffer()
	case "quit", "q":
		return m, tea.Quit
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	default:
		m.statusMsg = fmt.Sprintf("unknown command: %s", cmd)
		return m, nil
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewEditor:
		m.editorView, cmd = m.editorView.Update(msg)
	case ViewAssist:
		m.assistView, cmd = m.assistView.Update(msg)
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("CodeAssist", m.fileInfo())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// fileInfo describes the open buffer for the header.
func (m Model) fileInfo() string {
	name := m.buffer.FileName()
	if m.buffer.Dirty() {
		name += " *"
	}
	return fmt.Sprintf("%s · %s", name, m.buffer.Language())
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewEditor:
		return m.editorView.View()
	case ViewAssist:
		return m.assistView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewEditor {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewAssist:
		return "enter ask | F1-F4 quick actions | tab intention | ctrl+y apply | esc close"
	case ViewHistory:
		return "j/k select | r reload | esc back"
	case ViewSettings:
		return "enter next | esc cancel"
	case ViewHelp:
		return "? close help"
	case ViewCommand:
		return ": close palette | enter execute | esc back"
	default:
		return "a assistant | h history | s settings | ctrl+s save | ? help | q quit"
	}
}
