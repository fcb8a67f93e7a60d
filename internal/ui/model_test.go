// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, prompt input, and key handling
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(NewPromptControl())

	if model.connected {
		t.Error("expected connected to be false initially")
	}
	if model.state != "idle" {
		t.Errorf("expected initial state idle, got %s", model.state)
	}
	if model.input != "" {
		t.Errorf("expected empty input, got %q", model.input)
	}
}

func TestStatusMsgConnected(t *testing.T) {
	model := NewModel(NewPromptControl())

	connected := true
	msg := StatusMsg{
		Connected:  &connected,
		SourceName: "gemini-2.0-flash-exp",
	}

	model.applyStatus(msg)

	if !model.connected {
		t.Error("expected connected to be true after status update")
	}
	if model.sourceName != "gemini-2.0-flash-exp" {
		t.Errorf("expected sourceName 'gemini-2.0-flash-exp', got '%s'", model.sourceName)
	}
}

func TestStatusMsgStats(t *testing.T) {
	model := NewModel(NewPromptControl())

	model.applyStatus(StatusMsg{
		State:      "streaming",
		SampleRate: 24000,
		Appended:   5760,
		Rendered:   4096,
		Pending:    1664,
	})

	if model.state != "streaming" {
		t.Errorf("expected state streaming, got %s", model.state)
	}
	if model.appended != 5760 || model.rendered != 4096 || model.pending != 1664 {
		t.Errorf("stats not applied: appended=%d rendered=%d pending=%d",
			model.appended, model.rendered, model.pending)
	}
}

func TestTypingAndSubmit(t *testing.T) {
	ctrl := NewPromptControl()
	model := NewModel(ctrl)

	var m tea.Model = model
	for _, r := range "hello" {
		m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("there")})

	if got := m.(Model).input; got != "hello there" {
		t.Fatalf("input = %q, want %q", got, "hello there")
	}

	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case prompt := <-ctrl.Prompts:
		if prompt != "hello there" {
			t.Errorf("prompt = %q, want %q", prompt, "hello there")
		}
	default:
		t.Fatal("no prompt delivered on enter")
	}

	if m.(Model).input != "" {
		t.Error("input not cleared after submit")
	}
}

func TestBackspace(t *testing.T) {
	model := NewModel(NewPromptControl())

	var m tea.Model = model
	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.(Model).input; got != "a" {
		t.Errorf("input = %q after backspace, want \"a\"", got)
	}
}

func TestQuitWords(t *testing.T) {
	ctrl := NewPromptControl()
	model := NewModel(ctrl)

	var m tea.Model = model
	m, _ = m.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("quit")})
	_, cmd := m.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected quit command for 'quit' input")
	}
	select {
	case <-ctrl.Quit:
	default:
		t.Error("quit signal not delivered")
	}
}

func TestEmptyPromptIgnored(t *testing.T) {
	ctrl := NewPromptControl()
	model := NewModel(ctrl)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case p := <-ctrl.Prompts:
		t.Errorf("unexpected prompt %q from empty input", p)
	default:
	}
}
