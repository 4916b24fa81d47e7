// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel asks for a single line
type PromptModel struct {
	label    string
	input    textinput.Model
	done     bool
	canceled bool
}

func NewPrompt(label string, secret bool) *PromptModel {
	in := textinput.New()
	in.Prompt = "› "
	in.Focus()
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return &PromptModel{label: label, input: in}
}

func (m *PromptModel) Value() string  { return m.input.Value() }
func (m *PromptModel) Canceled() bool { return m.canceled }

func (m *PromptModel) Init() tea.Cmd { return textinput.Blink }

func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PromptModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return questionStyle.Render(m.label) + "\n" + m.input.View() + "\n"
}

// Prompt reads one line from in, drawing on out
func Prompt(in io.Reader, out io.Writer, label string, secret bool) (string, error) {
	m := NewPrompt(label, secret)
	if _, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if m.canceled {
		return "", ErrAborted
	}
	return m.Value(), nil
}
