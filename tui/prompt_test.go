// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPrompt(t *testing.T) {
	m := NewPrompt("Password", true)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hunter2")})

	if strings.Contains(m.View(), "hunter2") {
		t.Error("secret input must not be echoed")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit on enter")
	}
	if m.Value() != "hunter2" || m.Canceled() {
		t.Errorf("got %q canceled=%v", m.Value(), m.Canceled())
	}
}

func TestPrompt_Cancel(t *testing.T) {
	m := NewPrompt("Email", false)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Canceled() {
		t.Error("expected canceled")
	}
}
