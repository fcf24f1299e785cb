package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top header bar and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DialogStyle wraps the assistant dialog surface.
var DialogStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// PanelStyle wraps full-width content panels (history, settings, help).
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and muted help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle renders failure messages.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// SuggestionStyle renders returned code suggestions.
var SuggestionStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(lipgloss.AdaptiveColor{Dark: "#2B2F33", Light: "#EDF2F7"}).
	Padding(0, 1)

// IntentionStyle returns a color-coded style for the given intention name.
func IntentionStyle(intention string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch intention {
	case "fix":
		return base.Foreground(ColorRed)
	case "optimize":
		return base.Foreground(ColorYellow)
	case "explain":
		return base.Foreground(ColorBlue)
	case "brainstorm":
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// ConfidenceStyle returns a color-coded style for a confidence score in [0,1].
func ConfidenceStyle(confidence float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case confidence >= 0.8:
		return base.Foreground(ColorGreen)
	case confidence >= 0.5:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorOrange)
	}
}

// LanguageStyle returns a color-coded style for the given language label.
func LanguageStyle(language string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch language {
	case "html":
		return base.Foreground(ColorOrange)
	case "javascript":
		return base.Foreground(ColorYellow)
	case "css":
		return base.Foreground(ColorBlue)
	case "json":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
