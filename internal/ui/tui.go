// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the voxstream player
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PromptControl holds channels for prompt input communication.
type PromptControl struct {
	Prompts chan string
	Quit    chan struct{}
}

// NewPromptControl creates a new prompt control handler.
func NewPromptControl() *PromptControl {
	return &PromptControl{
		Prompts: make(chan string, 4),
		Quit:    make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model.
func NewModel(ctrl *PromptControl) Model {
	return Model{
		state:   "idle",
		control: ctrl,
	}
}

// Run starts the TUI.
func Run(ctrl *PromptControl) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
