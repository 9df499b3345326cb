package display

import "github.com/charmbracelet/lipgloss"

// Palette colors in 256-color codes.
const (
	colorText    = "252"
	colorMuted   = "244"
	colorAccent  = "39"
	colorSpeech  = "213"
	colorSuccess = "42"
	colorTrack   = "238"
)

// Styles contains the lipgloss styles of the terminal UI.
type Styles struct {
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Speech  lipgloss.Style
	Readout lipgloss.Style
	Filled  lipgloss.Style
	Track   lipgloss.Style
	Done    lipgloss.Style
}

// DefaultStyles builds the default terminal UI styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Speech:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorSpeech)).Italic(true),
		Readout: lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true).Padding(1, 2),
		Filled:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)),
		Track:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorTrack)),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Bold(true),
	}
}
