// Package components contains the building blocks of the listen interface.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// DataReceivedMsg carries one chunk read from the port
type DataReceivedMsg struct {
	Timestamp time.Time
	Data      []byte
}

// DisplayMode selects which renderings of a chunk are shown
type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

// DataFormatter renders received chunks as single display lines
type DataFormatter struct {
	mode DisplayMode

	timestampStyle lipgloss.Style
	indicatorStyle lipgloss.Style
}

func NewDataFormatter(showHex, showASCII bool) *DataFormatter {
	return &DataFormatter{
		mode:           DisplayMode{ShowHex: showHex, ShowASCII: showASCII},
		timestampStyle: lipgloss.NewStyle().Foreground(styles.Subtext0),
		indicatorStyle: lipgloss.NewStyle().Foreground(styles.Sky).Bold(true),
	}
}

func (df *DataFormatter) DisplayMode() DisplayMode {
	return df.mode
}

func (df *DataFormatter) ToggleHex() {
	df.mode.ShowHex = !df.mode.ShowHex
}

func (df *DataFormatter) ToggleASCII() {
	df.mode.ShowASCII = !df.mode.ShowASCII
}

// Printable replaces bytes outside printable ASCII with dots, so received
// data can never inject terminal control sequences.
func Printable(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// FormatMessage renders a chunk as "[time] RX: HEX: ..  ASCII: .."
func (df *DataFormatter) FormatMessage(msg DataReceivedMsg) string {
	var parts []string
	if df.mode.ShowHex {
		parts = append(parts, fmt.Sprintf("HEX: % X", msg.Data))
	}
	if df.mode.ShowASCII {
		parts = append(parts, "ASCII: "+Printable(msg.Data))
	}
	// If both are disabled, show raw bytes count
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(msg.Data)))
	}

	timestamp := df.timestampStyle.Render("[" + msg.Timestamp.Format("15:04:05.000") + "]")
	return fmt.Sprintf("%s %s: %s", timestamp, df.indicatorStyle.Render("RX"), strings.Join(parts, "  "))
}

func (df *DataFormatter) FormatMessages(messages []DataReceivedMsg) []string {
	formatted := make([]string, len(messages))
	for i, msg := range messages {
		formatted[i] = df.FormatMessage(msg)
	}
	return formatted
}
