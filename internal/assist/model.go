package assist

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hnguyen/codeassist/internal/ai"
	"github.com/hnguyen/codeassist/internal/keys"
	"github.com/hnguyen/codeassist/internal/theme"
)

// CloseMsg signals the parent to close the assistant dialog. Every dismiss
// path (escape, backdrop click, explicit close) emits this same message.
type CloseMsg struct{}

// ApplyMsg hands the raw suggestion text back to the parent, which applies
// it to the buffer and closes the dialog.
type ApplyMsg struct {
	Suggestion string
}

// ResultMsg carries the completion of one suggestion request. Seq ties it
// to the request that produced it so stale completions can be discarded.
type ResultMsg struct {
	Seq       uint64
	Response  *ai.Response
	Err       error
	Request   ai.Request
	Intention Intention
}

// Model is the assistant dialog Bubble Tea model. It composes suggestion
// requests against the code supplied by the host, tracks the request
// lifecycle, and presents the result.
type Model struct {
	state     State
	suggester ai.Suggester
	keys      *keys.KeyMap

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Target supplied by the host; the dialog never mutates it.
	code     string
	language string
	fileName string

	// confirming gates a full-document apply behind a yes/no sub-state.
	confirming bool
	canApply   bool

	width  int
	height int
}

// New creates the assistant dialog. A nil suggester (no API key) renders a
// configuration prompt instead of the composer.
func New(suggester ai.Suggester, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about this code..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = dialogWidth(width) - 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(dialogWidth(width)-6, resultHeight(height))

	return Model{
		state:     NewState(),
		suggester: suggester,
		keys:      k,
		input:     ti,
		viewport:  vp,
		spinner:   sp,
		width:     width,
		height:    height,
	}
}

// SetTarget provides the code the dialog composes requests about. The
// language is taken from the host's fixed supported set.
func (m *Model) SetTarget(code, language, fileName string) {
	m.code = code
	m.language = language
	m.fileName = fileName
}

// SetCanApply controls whether the apply action is offered. The host
// disables it when no apply hook exists (e.g. a read-only file).
func (m *Model) SetCanApply(canApply bool) {
	m.canApply = canApply
}

// SetSuggester swaps the inference backend, e.g. after the API key was
// configured in settings.
func (m *Model) SetSuggester(suggester ai.Suggester) {
	m.suggester = suggester
}

// State exposes the current interaction state snapshot.
func (m Model) State() State {
	return m.state
}

// Init returns the initial command for the dialog.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives keyboard focus to the query input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset returns the dialog to its initial state. The sequence counter is
// preserved so an in-flight completion arriving after close is ignored.
func (m *Model) Reset() {
	m.state = m.state.Reset()
	m.confirming = false
	m.input.Reset()
	m.viewport.SetContent("")
}

// Update handles messages for the assistant dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		return m.handleResult(msg), nil

	case spinner.TickMsg:
		if m.state.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd

	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	if tiCmd != nil {
		cmds = append(cmds, tiCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleResult applies a request completion to the dialog state.
func (m Model) handleResult(msg ResultMsg) Model {
	if msg.Err != nil {
		log.Printf("assist: request %d failed: %v", msg.Seq, msg.Err)
		m.state = m.state.Fail(msg.Seq, msg.Err.Error())
		return m
	}

	m.state = m.state.Complete(msg.Seq, msg.Response)
	if m.state.Response != nil {
		m.viewport.SetContent(m.renderResponseBody())
		m.viewport.GotoTop()
	}
	return m
}

// handleMouse closes the dialog when the backdrop outside the dialog
// surface is clicked. Clicks inside the surface never dismiss.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.surfaceContains(msg.X, msg.Y) {
		return m, nil
	}

	return m, closeCmd()
}

// handleKey processes keyboard input for the dialog.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The confirmation sub-state swallows everything except its own
	// yes/no answer; declining leaves the response untouched.
	if m.confirming {
		switch msg.String() {
		case "y", "Y", "enter":
			m.confirming = false
			return m, m.applyCmd()
		case "n", "N", "esc":
			m.confirming = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back, m.keys.CloseDialog):
		return m, closeCmd()

	case key.Matches(msg, m.keys.NextIntent):
		m.state = m.state.WithIntention(m.state.Intention.Next())
		return m, nil

	case key.Matches(msg, m.keys.PrevIntent):
		m.state = m.state.WithIntention(m.state.Intention.Prev())
		return m, nil

	case key.Matches(msg, m.keys.QuickFix):
		return m.activateQuickPrompt(0)

	case key.Matches(msg, m.keys.QuickOpt):
		return m.activateQuickPrompt(1)

	case key.Matches(msg, m.keys.QuickExp):
		return m.activateQuickPrompt(2)

	case key.Matches(msg, m.keys.QuickIdea):
		return m.activateQuickPrompt(3)

	case key.Matches(msg, m.keys.SubmitQuery):
		return m.submit(m.input.Value())

	case key.Matches(msg, m.keys.Apply):
		return m.beginApply()
	}

	// Compose controls are disabled while a request is pending and when
	// no backend is configured.
	if m.state.Loading || m.suggester == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activateQuickPrompt runs a catalog entry: select its intention, put its
// prompt text in the query field, and submit, all as one action. The whole
// action is rejected while a request is pending so a refused submission
// cannot leave the intention or query changed.
func (m Model) activateQuickPrompt(idx int) (Model, tea.Cmd) {
	if m.state.Loading || m.suggester == nil {
		return m, nil
	}

	catalog := QuickPrompts()
	if idx < 0 || idx >= len(catalog) {
		return m, nil
	}

	qp := catalog[idx]
	m.state = m.state.WithIntention(qp.Intention)
	m.input.SetValue(qp.Prompt)
	return m.submit(qp.Prompt)
}

// submit issues one suggestion request for the given prompt text. Blank
// prompts and submissions while a request is pending are no-ops.
func (m Model) submit(prompt string) (Model, tea.Cmd) {
	if m.suggester == nil {
		return m, nil
	}

	next, effective, ok := m.state.BeginRequest(prompt)
	if !ok {
		return m, nil
	}
	m.state = next

	req := ai.Request{
		Code:        m.code,
		Language:    strings.ToLower(m.language),
		FileName:    m.fileName,
		Prompt:      effective,
		Context:     RequestContext,
		Temperature: m.state.Intention.Spec().Temperature,
	}

	seq := m.state.Seq
	intention := m.state.Intention
	suggester := m.suggester

	request := func() tea.Msg {
		resp, err := suggester.Suggest(context.Background(), req)
		return ResultMsg{
			Seq:       seq,
			Response:  resp,
			Err:       err,
			Request:   req,
			Intention: intention,
		}
	}

	return m, tea.Batch(m.spinner.Tick, request)
}

// beginApply starts the apply action for the current response. Suggestions
// that replace the whole document require confirmation first.
func (m Model) beginApply() (Model, tea.Cmd) {
	if !m.canApply || m.state.Phase() != PhaseResponse {
		return m, nil
	}

	if NeedsConfirmation(m.state.Response.Suggestion) {
		m.confirming = true
		return m, nil
	}

	return m, m.applyCmd()
}

// applyCmd emits the apply message carrying the raw suggestion text.
func (m Model) applyCmd() tea.Cmd {
	suggestion := m.state.Response.Suggestion
	return func() tea.Msg {
		return ApplyMsg{Suggestion: suggestion}
	}
}

func closeCmd() tea.Cmd {
	return func() tea.Msg {
		return CloseMsg{}
	}
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = dialogWidth(width) - 8
	m.viewport.Width = dialogWidth(width) - 6
	m.viewport.Height = resultHeight(height)
}

// dialogWidth returns the dialog surface width for a given terminal width.
func dialogWidth(width int) int {
	w := width - 10
	if w > 78 {
		w = 78
	}
	if w < 30 {
		w = 30
	}
	return w
}

// resultHeight returns the height of the scrolling result area.
func resultHeight(height int) int {
	h := height - 16
	if h < 4 {
		h = 4
	}
	return h
}

// surfaceContains reports whether the coordinate falls on the centered
// dialog surface rather than the backdrop.
func (m Model) surfaceContains(x, y int) bool {
	surface := m.renderSurface()
	w := lipgloss.Width(surface)
	h := lipgloss.Height(surface)

	x0 := (m.width - w) / 2
	y0 := (m.height - h) / 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}

// View renders the dialog centered over a blank backdrop.
func (m Model) View() string {
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.renderSurface(),
	)
}

// renderSurface builds the dialog surface itself.
func (m Model) renderSurface() string {
	if m.suggester == nil {
		return m.renderNoAPIKey()
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	title := titleStyle.Render("AI Assistant")

	target := theme.HelpStyle.Render(m.targetLine())

	sep := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", dialogWidth(m.width)-6))

	var body string
	if m.confirming {
		body = m.renderConfirm()
	} else {
		body = m.renderResult()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		target,
		"",
		m.renderIntentions(),
		m.renderQuickActions(),
		sep,
		body,
		sep,
		m.input.View(),
		theme.HelpStyle.Render(m.footerHints()),
	)

	return theme.DialogStyle.
		Width(dialogWidth(m.width)).
		Render(content)
}

// targetLine describes the code the dialog is working on.
func (m Model) targetLine() string {
	name := m.fileName
	if name == "" {
		name = "(unsaved buffer)"
	}
	return fmt.Sprintf("%s · %s", name, m.language)
}

// renderIntentions draws the four intention buttons plus the selected
// preset's description and temperature.
func (m Model) renderIntentions() string {
	var buttons []string
	for _, intent := range Intentions() {
		style := theme.IntentionStyle(string(intent))
		if intent == m.state.Intention {
			style = style.Reverse(true)
		}
		buttons = append(buttons, style.Render(intent.Spec().Label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)

	spec := m.state.Intention.Spec()
	detail := theme.HelpStyle.Render(fmt.Sprintf(
		"%s (temperature %.1f)", spec.Description, spec.Temperature,
	))

	return lipgloss.JoinVertical(lipgloss.Left, row, detail)
}

// renderQuickActions draws the quick prompt catalog with its key hints.
func (m Model) renderQuickActions() string {
	var entries []string
	for i, qp := range QuickPrompts() {
		entries = append(entries, fmt.Sprintf(
			"F%d %s %s", i+1, qp.Icon, qp.Label,
		))
	}

	return theme.HelpStyle.Render(strings.Join(entries, "   "))
}

// renderResult draws exactly one of the four lifecycle views.
func (m Model) renderResult() string {
	switch m.state.Phase() {
	case PhaseLoading:
		return fmt.Sprintf("%s Consulting the assistant...", m.spinner.View())

	case PhaseError:
		return m.renderError()

	case PhaseResponse:
		return m.viewport.View()

	default:
		return theme.HelpStyle.Render(
			"Ask a question about this code, or pick a quick action above.",
		)
	}
}

// renderError shows the stored failure plus static troubleshooting hints.
func (m Model) renderError() string {
	hints := theme.HelpStyle.Render(strings.Join([]string{
		"• Check your network connection",
		"• Verify the API key in settings (s)",
		"• Try again in a few seconds",
	}, "\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		theme.ErrorStyle.Render("Request failed: "+m.state.Err),
		hints,
	)
}

// renderResponseBody builds the scrollable suggestion/explanation content.
func (m Model) renderResponseBody() string {
	resp := m.state.Response
	if resp == nil {
		return ""
	}

	confidence := fmt.Sprintf(
		"Confidence: %d%%",
		int(math.Round(resp.Confidence*100)),
	)

	sections := []string{
		theme.ConfidenceStyle(resp.Confidence).Render(confidence),
		"",
		theme.SuggestionStyle.Render(resp.Suggestion),
	}

	if resp.Explanation != "" {
		sections = append(sections, "", resp.Explanation)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderConfirm draws the full-document replacement confirmation.
func (m Model) renderConfirm() string {
	warning := "This suggestion replaces the entire document."
	return lipgloss.JoinVertical(
		lipgloss.Left,
		theme.ErrorStyle.Render(warning),
		"",
		"Apply it anyway? (y/n)",
	)
}

// footerHints returns the key hints shown at the bottom of the dialog.
func (m Model) footerHints() string {
	if m.confirming {
		return "y apply | n cancel"
	}
	if m.state.Phase() == PhaseResponse && m.canApply {
		return "ctrl+y apply | tab intention | enter ask | esc close"
	}
	return "tab intention | F1-F4 quick actions | enter ask | esc close"
}

// renderNoAPIKey shows a configuration prompt when no backend is available.
func (m Model) renderNoAPIKey() string {
	msg := "The AI assistant needs an OpenAI API key.\n\n" +
		"Store one with:\n" +
		"  codeassist key set\n\n" +
		"Or set the OPENAI_API_KEY environment variable.\n\n" +
		"Press Esc to go back."

	return theme.DialogStyle.
		Width(dialogWidth(m.width)).
		Render(theme.HelpStyle.Render(msg))
}
