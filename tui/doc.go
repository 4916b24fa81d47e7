// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui holds the bubbletea screens of the triddle CLI. FillModel walks
// a respondent through a form: enter confirms, shift+tab goes back, esc
// quits. Submission runs as a command so the screen never blocks on the
// network, and only one submission is ever in flight.
package tui
