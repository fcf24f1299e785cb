package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Assistant dialog
	Assist      key.Binding
	SubmitQuery key.Binding
	NextIntent  key.Binding
	PrevIntent  key.Binding
	QuickFix    key.Binding
	QuickOpt    key.Binding
	QuickExp    key.Binding
	QuickIdea   key.Binding
	Apply       key.Binding
	CloseDialog key.Binding

	// Editor
	Save key.Binding

	// Views
	History  key.Binding
	Settings key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Assist: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI assistant"),
		),
		SubmitQuery: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		NextIntent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next intention"),
		),
		PrevIntent: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous intention"),
		),
		QuickFix: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "fix bugs"),
		),
		QuickOpt: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "optimize"),
		),
		QuickExp: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "explain"),
		),
		QuickIdea: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "ideas"),
		),
		Apply: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "apply suggestion"),
		),
		CloseDialog: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "close dialog"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save file"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "suggestion history"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Assist, k.Back, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit, k.Help, k.Command},
		{k.Assist, k.SubmitQuery, k.NextIntent, k.PrevIntent, k.CloseDialog},
		{k.QuickFix, k.QuickOpt, k.QuickExp, k.QuickIdea, k.Apply},
		{k.Save, k.History, k.Settings},
	}
}
