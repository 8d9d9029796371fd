package components

import (
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the single-line footer of the listen interface:
//
//	LISTEN /dev/ttyUSB0 ● │ ...status...          9600 8N1 0.5s │ 12:00:01
type StatusBar struct {
	portPath string
	settings string
	status   styles.StatusType
	message  string
	width    int
}

func NewStatusBar(portPath, settings string) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		settings: settings,
		status:   styles.StatusOpening,
		message:  "Opening...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetOpen() {
	sb.status = styles.StatusOpen
	sb.message = "Listening for data..."
}

func (sb *StatusBar) SetPaused(paused bool) {
	if sb.status != styles.StatusOpen {
		return
	}
	if paused {
		sb.message = "Display paused"
	} else {
		sb.message = "Listening for data..."
	}
}

func (sb *StatusBar) SetClosed(err error) {
	if err != nil {
		sb.status = styles.StatusError
		sb.message = err.Error()
		return
	}
	sb.status = styles.StatusClosed
	sb.message = "Closed"
}

func (sb *StatusBar) Status() styles.StatusType {
	return sb.status
}

// View renders the bar at the configured width; timestamp goes on the right
func (sb *StatusBar) View(timestamp string) string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	mode := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.Blue).
		Bold(true).
		Padding(0, 1).
		Render("LISTEN")
	port := lipgloss.NewStyle().Foreground(styles.Mauve).Bold(true).Padding(0, 1).Render(sb.portPath)
	divider := lipgloss.NewStyle().Foreground(styles.Surface2).Padding(0, 1).Render("│")
	message := lipgloss.NewStyle().Foreground(styles.Subtext0).Padding(0, 1).Render(sb.message)
	settings := lipgloss.NewStyle().Foreground(styles.Peach).Padding(0, 1).Render(sb.settings)
	clock := lipgloss.NewStyle().Padding(0, 1).Render(timestamp)

	left := lipgloss.JoinHorizontal(lipgloss.Left, mode, port, styles.StatusIndicator(sb.status), divider, message)
	right := lipgloss.JoinHorizontal(lipgloss.Left, settings, divider, clock)

	spacerWidth := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return styles.StatusBarStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, left, spacer, right))
}
