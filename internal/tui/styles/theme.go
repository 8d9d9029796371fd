// Package styles holds the lipgloss styles shared by the CLI and the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the interface
var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Subtext0 = lipgloss.Color("#a6adc8")
	Text     = lipgloss.Color("#cdd6f4")

	Blue   = lipgloss.Color("#89b4fa")
	Sky    = lipgloss.Color("#89dceb")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

var (
	// CLI message styles
	InfoStyle    = lipgloss.NewStyle().Foreground(Mauve).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Subtext0)

	// TUI styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Surface1)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Padding(1, 2).
			Margin(1, 0)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0)

	TableHeaderStyle = lipgloss.NewStyle().Foreground(Mauve).Bold(true)
)

// StatusType is the state of the device shown in the status bar
type StatusType int

const (
	StatusOpening StatusType = iota
	StatusOpen
	StatusClosed
	StatusError
)

// StatusIndicator returns the colored single-character indicator for status
func StatusIndicator(status StatusType) string {
	switch status {
	case StatusOpen:
		return lipgloss.NewStyle().Foreground(Green).Render("●")
	case StatusOpening:
		return lipgloss.NewStyle().Foreground(Yellow).Render("○")
	case StatusError:
		return lipgloss.NewStyle().Foreground(Red).Render("✗")
	default:
		return lipgloss.NewStyle().Foreground(Red).Render("○")
	}
}
