package cmd

import "github.com/charmbracelet/lipgloss"

// ANSI-256 color codes, named the way internal/ui/styles.go names its
// palette constants.
const (
	colorLime   = "154"
	colorCyan   = "86"
	colorRed    = "203"
	colorGray   = "244"
	colorYellow = "221"
)

// Styles bundles the handful of named styles vettore-cli needs: this is a
// much smaller set than a full TUI would carry, since the CLI only ever
// prints one-shot tables and status lines.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Value   lipgloss.Style
	Score   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the style set used by every subcommand.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan)),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGray)),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorLime)),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLime)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}
