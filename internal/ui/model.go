// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Prompt input line plus session state and playback statistics
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state.
type Model struct {
	// Connection
	connected  bool
	sourceName string

	// Session
	state      string
	sampleRate int
	blockSize  int

	// Stats
	appended int64
	rendered int64
	dropped  int64
	pending  int

	// Prompt input
	input   string
	lastMsg string
	busy    bool

	control *PromptControl

	// Dimensions
	width  int
	height int
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderSession()
	s += m.renderStats()
	s += m.renderPrompt()
	s += m.renderHelp()

	return s
}

// renderHeader renders connection status.
func (m Model) renderHeader() string {
	connStatus := "Disconnected"
	if m.connected {
		connStatus = fmt.Sprintf("Connected to %s", truncate(m.sourceName, 38))
	}

	return fmt.Sprintf(`┌─ Voxstream Player ───────────────────────────────────┐
│ Source: %-45s│
├──────────────────────────────────────────────────────┤
`, connStatus)
}

// renderSession renders playback state and buffer fill.
func (m Model) renderSession() string {
	bufferMS := 0
	if m.sampleRate > 0 {
		bufferMS = m.pending * 1000 / m.sampleRate
	}

	return fmt.Sprintf("│ State:  %-45s│\n│ Buffer: %5dms pending (%d samples)%-17s│\n",
		m.state, bufferMS, m.pending, "")
}

// renderStats renders playback statistics.
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  RX: %-8d Played: %-8d Dropped: %-6d│
`, m.appended, m.rendered, m.dropped)
}

// renderPrompt renders the input line.
func (m Model) renderPrompt() string {
	marker := "> "
	if m.busy {
		marker = "… "
	}
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ %s%-51s│
`, marker, truncate(m.input, 51))
}

// renderHelp renders keyboard shortcuts.
func (m Model) renderHelp() string {
	return `│ enter:Send  esc/ctrl+c:Quit                          │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.signalQuit()
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input)
		m.input = ""
		if text == "" || m.busy {
			return m, nil
		}
		if text == "q" || text == "quit" || text == "exit" {
			m.signalQuit()
			return m, tea.Quit
		}
		select {
		case m.control.Prompts <- text:
			m.lastMsg = text
		default:
		}

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}

	return m, nil
}

// signalQuit notifies the orchestrator without blocking.
func (m Model) signalQuit() {
	select {
	case m.control.Quit <- struct{}{}:
	default:
	}
}

// applyStatus updates model from a status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Connected != nil {
		m.connected = *msg.Connected
	}
	if msg.SourceName != "" {
		m.sourceName = msg.SourceName
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.blockSize = msg.BlockSize
	}
	if msg.Busy != nil {
		m.busy = *msg.Busy
	}
	m.appended = msg.Appended
	m.rendered = msg.Rendered
	m.dropped = msg.Dropped
	m.pending = msg.Pending
}

// StatusMsg updates TUI state.
type StatusMsg struct {
	Connected  *bool
	SourceName string
	State      string
	SampleRate int
	BlockSize  int
	Busy       *bool
	Appended   int64
	Rendered   int64
	Dropped    int64
	Pending    int
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
