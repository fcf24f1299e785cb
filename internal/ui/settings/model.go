package settings

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hnguyen/codeassist/internal/credential"
	"github.com/hnguyen/codeassist/internal/model"
	"github.com/hnguyen/codeassist/internal/theme"
)

// SettingsDoneMsg signals the settings view should close without changes.
type SettingsDoneMsg struct{}

// SettingsSavedMsg signals the configuration was saved. A non-empty APIKey
// means the key changed and the assistant should be rebuilt.
type SettingsSavedMsg struct {
	Config *model.AppConfig
	APIKey string
}

// savedInternalMsg carries the result of persisting the settings.
type savedInternalMsg struct {
	cfg    *model.AppConfig
	apiKey string
	err    error
}

// Model is the huh-based settings form view.
type Model struct {
	cfg        *model.AppConfig
	configPath string

	form *huh.Form

	// Form field values (huh binds to these)
	formModel     string
	formMaxTokens string
	formBaseURL   string
	formAPIKey    string
	formHistory   bool

	statusMsg     string
	width, height int
}

// New creates a settings view for the given configuration.
func New(cfg *model.AppConfig, configPath string, width, height int) Model {
	return Model{
		cfg:        cfg,
		configPath: configPath,
		width:      width,
		height:     height,
	}
}

// Init builds and starts the form from the current configuration.
func (m *Model) Init() tea.Cmd {
	m.formModel = m.cfg.AI.Model
	m.formMaxTokens = strconv.Itoa(m.cfg.AI.MaxTokens)
	m.formBaseURL = m.cfg.AI.BaseURL
	m.formAPIKey = ""
	m.formHistory = m.cfg.History.Enabled
	m.statusMsg = ""

	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm constructs the settings form.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Model").
				Description("Chat-completions model used for suggestions").
				Placeholder("gpt-4o-mini").
				Value(&m.formModel),
			huh.NewInput().
				Title("Max tokens").
				Description("Response length cap per request").
				Value(&m.formMaxTokens).
				Validate(validateInt("Max tokens")),
			huh.NewInput().
				Title("Base URL").
				Description("Leave empty for the default OpenAI endpoint").
				Value(&m.formBaseURL),
			huh.NewInput().
				Title("API key").
				Description("Stored in the system keyring; leave empty to keep the current key").
				EchoMode(huh.EchoModePassword).
				Value(&m.formAPIKey),
			huh.NewConfirm().
				Title("Record suggestion history").
				Value(&m.formHistory),
		),
	).WithWidth(m.formWidth())
}

// validateInt rejects values that do not parse as a positive integer.
func validateInt(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", field)
		}
		return nil
	}
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case savedInternalMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		return m, func() tea.Msg {
			return SettingsSavedMsg{Config: msg.cfg, APIKey: msg.apiKey}
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SettingsDoneMsg{} }
	}

	return m, cmd
}

// save persists the form values to the config file and keyring.
func (m Model) save() tea.Cmd {
	cfg := *m.cfg
	cfg.AI.Model = m.formModel
	cfg.AI.BaseURL = m.formBaseURL
	cfg.History.Enabled = m.formHistory
	if n, err := strconv.Atoi(m.formMaxTokens); err == nil && n > 0 {
		cfg.AI.MaxTokens = n
	}

	apiKey := m.formAPIKey
	path := m.configPath

	return func() tea.Msg {
		if err := model.SaveConfig(path, &cfg); err != nil {
			return savedInternalMsg{err: err}
		}
		if apiKey != "" {
			if err := credential.Set(credential.APIKeyName, apiKey); err != nil {
				return savedInternalMsg{err: err}
			}
		}
		return savedInternalMsg{cfg: &cfg, apiKey: apiKey}
	}
}

// View renders the settings form.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Settings")

	var body string
	if m.form != nil {
		body = m.form.View()
	}
	if m.statusMsg != "" {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			body,
			theme.ErrorStyle.Render(m.statusMsg),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// formWidth returns the usable width for the form.
func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// SetSize updates the settings view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
