/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/tui/components"
	"github.com/allbin/go-uart/internal/tui/keys"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <port>",
	Short: "Watch incoming data on a port in a terminal UI",
	Long: `Open the port with the configured baud rate and mode and display
incoming data in real time.

Each read waits at most the configured read timeout, so the display stays
responsive even when the line is silent.

Example usage:
  uart listen /dev/ttyUSB0
  uart listen /dev/ttyUSB0 --baud 115200 --mode 7E1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListenTUI(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

// portOpenedMsg is sent once the port is configured
type portOpenedMsg struct{}

// readStoppedMsg is sent when the reader goroutine exits
type readStoppedMsg struct {
	err error
}

// listenModel represents the Bubble Tea model for the listen command
type listenModel struct {
	terminal  *components.Terminal
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.ListenKeys
	ready     bool
	paused    bool
}

func newListenModel(portPath, settings string) *listenModel {
	return &listenModel{
		terminal:  components.NewTerminal(80, 20),
		statusBar: components.NewStatusBar(portPath, settings),
		help:      help.New(),
		keys:      keys.NewListenKeys(),
	}
}

func runListenTUI(portPath string) error {
	m := newListenModel(portPath, settingsSummary())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := uart.With(portPath, func(port *uart.Port) error {
			p.Send(portOpenedMsg{})
			return readLoop(ctx, port, p.Send)
		}, portOptions()...)
		if err != nil {
			logger.Debug("listen stopped", slog.Any("error", err))
		}
		p.Send(readStoppedMsg{err: err})
	}()

	_, err := p.Run()

	// The reader owns the port; wait for it to notice the cancellation,
	// which takes at most one read timeout.
	cancel()
	wg.Wait()
	return err
}

// readLoop forwards chunks read from port until ctx is done
func readLoop(ctx context.Context, port *uart.Port, send func(tea.Msg)) error {
	buffer := make([]byte, 4096)
	for ctx.Err() == nil {
		n, err := port.Read(buffer)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		data := make([]byte, n)
		copy(data, buffer[:n])
		send(components.DataReceivedMsg{Timestamp: time.Now(), Data: data})
	}
	return nil
}

func (m *listenModel) Init() tea.Cmd {
	return nil
}

func (m *listenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Status bar is single line
		m.terminal.SetSize(msg.Width, msg.Height-1)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true

	case portOpenedMsg:
		m.statusBar.SetOpen()

	case readStoppedMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.statusBar.SetClosed(msg.err)
		} else {
			m.statusBar.SetClosed(nil)
		}

	case components.DataReceivedMsg:
		if !m.paused {
			m.terminal.AddMessage(msg)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Clear):
			m.terminal.Clear()
		case key.Matches(msg, m.keys.ToggleHex):
			m.terminal.ToggleHex()
		case key.Matches(msg, m.keys.ToggleASCII):
			m.terminal.ToggleASCII()
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.statusBar.SetPaused(m.paused)
		}
	}

	if cmd := m.terminal.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *listenModel) View() string {
	content := "Initializing..."
	if m.ready {
		content = m.terminal.View()
	}

	sections := []string{styles.ContentBorderStyle.Render(content)}
	if m.help.ShowAll {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))
	}
	sections = append(sections, m.statusBar.View(time.Now().Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
