// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("99")
	muted   = lipgloss.Color("241")
	danger  = lipgloss.Color("196")
	success = lipgloss.Color("42")

	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	questionStyle  = lipgloss.NewStyle().Bold(true)
	requiredStyle  = lipgloss.NewStyle().Foreground(danger)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	errorStyle     = lipgloss.NewStyle().Foreground(danger)
	cursorStyle    = lipgloss.NewStyle().Foreground(primary).Bold(true)
	doneStyle      = lipgloss.NewStyle().Bold(true).Foreground(success)
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(primary).
	Padding(1, 2)

const barWidth = 30

// progressBar draws step of total as a fixed-width bar
func progressBar(step, total int) string {
	if total <= 0 {
		return ""
	}
	filled := step * barWidth / total
	return lipgloss.NewStyle().Foreground(primary).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
