// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/renderer"
	"github.com/danielhkuo/triddle/runner"
)

// ErrAborted is returned by RunFill when the respondent quits early
var ErrAborted = errors.New("form not submitted")

type submittedMsg struct{ err error }

// FillModel is the one-question-at-a-time fill-out screen. Network
// submission runs as a tea.Cmd once the runner completes.
type FillModel struct {
	ctx    context.Context
	r      *runner.Runner
	submit runner.Submitter

	pending    map[string]models.Answer
	submitting bool
	done       bool
	submitErr  error
	quitting   bool

	input  textinput.Model
	area   textarea.Model
	cursor int
	hint   string
	width  int
}

// NewFill builds the model. submit receives the answers once, after the
// last question.
func NewFill(ctx context.Context, form models.Form, submit runner.Submitter) (*FillModel, error) {
	m := &FillModel{ctx: ctx, submit: submit}

	r, err := runner.New(form, runner.SubmitterFunc(m.capture))
	if err != nil {
		return nil, err
	}
	m.r = r

	m.input = textinput.New()
	m.input.Prompt = "› "
	m.input.Width = 50

	m.area = textarea.New()
	m.area.ShowLineNumbers = false
	m.area.SetWidth(60)
	m.area.SetHeight(4)
	// enter moves on, so newlines need a modifier
	m.area.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	m.load()
	return m, nil
}

// capture stands in for the real submitter inside the runner so the network
// call can happen off the update loop
func (m *FillModel) capture(_ context.Context, _ string, answers map[string]models.Answer) error {
	m.pending = answers
	return nil
}

func (m *FillModel) Runner() *runner.Runner { return m.r }
func (m *FillModel) Submitted() bool        { return m.done && m.submitErr == nil }
func (m *FillModel) SubmitErr() error       { return m.submitErr }

// load points the widgets at the runner's current question
func (m *FillModel) load() {
	c := m.r.Control()
	q := c.Question()
	m.hint = ""
	m.cursor = 0

	switch c.Kind() {
	case renderer.KindInput, renderer.KindDatePicker:
		m.input.Placeholder = q.Placeholder
		if c.Kind() == renderer.KindDatePicker {
			m.input.Placeholder = renderer.DateLayout
		}
		m.input.SetValue(c.Text())
		m.input.CursorEnd()
		m.input.Focus()
		m.area.Blur()
	case renderer.KindTextArea:
		m.area.Placeholder = q.Placeholder
		m.area.SetValue(c.Text())
		m.area.Focus()
		m.input.Blur()
	case renderer.KindRadioGroup:
		for i, o := range q.Options {
			if c.Selected(o.ID) {
				m.cursor = i
			}
		}
		m.input.Blur()
		m.area.Blur()
	default:
		m.input.Blur()
		m.area.Blur()
	}
}

func (m *FillModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submittedMsg:
		m.submitting = false
		m.done = true
		m.submitErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

		if m.r.Complete() {
			if m.done && (msg.String() == "enter" || msg.String() == "q") {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "enter":
			return m.confirm()
		case "shift+tab":
			if m.r.Previous() {
				m.load()
			}
			return m, nil
		}
		return m, m.handleInput(msg)
	}

	return m, nil
}

func (m *FillModel) confirm() (tea.Model, tea.Cmd) {
	if err := m.r.HandleKey(m.ctx, runner.KeyConfirm); err != nil {
		// RequiredError shows through r.Error()
		return m, nil
	}
	if !m.r.Complete() {
		m.load()
		return m, nil
	}

	m.submitting = true
	formID, answers, submit, ctx := m.r.Form().ID, m.pending, m.submit, m.ctx
	return m, func() tea.Msg {
		return submittedMsg{err: submit.Submit(ctx, formID, answers)}
	}
}

func (m *FillModel) handleInput(msg tea.KeyMsg) tea.Cmd {
	c := m.r.Control()
	q := c.Question()

	switch c.Kind() {
	case renderer.KindInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != c.Text() {
			c.SetText(v)
		}
		return cmd

	case renderer.KindTextArea:
		var cmd tea.Cmd
		m.area, cmd = m.area.Update(msg)
		if v := m.area.Value(); v != c.Text() {
			c.SetText(v)
		}
		return cmd

	case renderer.KindDatePicker:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		v := m.input.Value()
		if v == c.Text() {
			return cmd
		}
		m.hint = ""
		if err := c.SetDateString(v); err != nil {
			// half-typed dates don't count as answers
			c.Clear()
			m.hint = "Use " + renderer.DateLayout
		}
		return cmd

	case renderer.KindRadioGroup:
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1, len(q.Options))
			c.Select(q.Options[m.cursor].ID)
		case "down", "j":
			m.moveCursor(1, len(q.Options))
			c.Select(q.Options[m.cursor].ID)
		case " ", "x":
			c.Select(q.Options[m.cursor].ID)
		}

	case renderer.KindCheckboxGroup:
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1, len(q.Options))
		case "down", "j":
			m.moveCursor(1, len(q.Options))
		case " ", "x":
			id := q.Options[m.cursor].ID
			c.Toggle(id, !c.Selected(id))
		}
	}
	return nil
}

func (m *FillModel) moveCursor(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *FillModel) View() string {
	if m.quitting {
		return ""
	}
	form := m.r.Form()

	if m.r.Complete() {
		switch {
		case m.submitting:
			return boxStyle.Render("Submitting your response...")
		case m.submitErr != nil:
			return boxStyle.Render(errorStyle.Render("Error submitting response") + "\n\n" +
				m.submitErr.Error() + "\n\n" + mutedStyle.Render("enter to exit"))
		default:
			return boxStyle.Render(doneStyle.Render("✓ Thank you!") + "\n\n" +
				fmt.Sprintf("Your responses to %q have been submitted successfully.", form.Title) + "\n\n" +
				mutedStyle.Render("enter to exit"))
		}
	}

	var b strings.Builder
	b.WriteString(formTitleStyle.Render(form.Title) + "\n")
	if form.Description != "" {
		b.WriteString(mutedStyle.Render(form.Description) + "\n")
	}

	step, total := m.r.Progress()
	b.WriteString(fmt.Sprintf("\n%s  %s\n\n", progressBar(step, total), mutedStyle.Render(fmt.Sprintf("%d of %d", step, total))))

	c := m.r.Control()
	q := c.Question()
	title := questionStyle.Render(q.Title)
	if q.Required {
		title += requiredStyle.Render(" *")
	}
	b.WriteString(title + "\n\n")

	switch c.Kind() {
	case renderer.KindInput, renderer.KindDatePicker:
		b.WriteString(m.input.View() + "\n")
	case renderer.KindTextArea:
		b.WriteString(m.area.View() + "\n")
	case renderer.KindRadioGroup, renderer.KindCheckboxGroup:
		for i, o := range q.Options {
			b.WriteString(m.optionLine(c, i, o) + "\n")
		}
	}

	if m.hint != "" {
		b.WriteString(mutedStyle.Render(m.hint) + "\n")
	}
	if err := m.r.Error(); err != nil {
		b.WriteString("\n" + errorStyle.Render(err.Error()) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(m.help()))
	return b.String()
}

func (m *FillModel) optionLine(c *renderer.Control, i int, o models.Option) string {
	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("› ")
	}

	mark := "( )"
	if c.Kind() == renderer.KindCheckboxGroup {
		mark = "[ ]"
	}
	if c.Selected(o.ID) {
		if c.Kind() == renderer.KindCheckboxGroup {
			mark = "[x]"
		} else {
			mark = "(•)"
		}
	}
	return pointer + mark + " " + o.Label
}

func (m *FillModel) help() string {
	var parts []string
	switch m.r.Control().Kind() {
	case renderer.KindRadioGroup:
		parts = append(parts, "↑/↓ choose")
	case renderer.KindCheckboxGroup:
		parts = append(parts, "↑/↓ move", "space toggle")
	case renderer.KindTextArea:
		parts = append(parts, "alt+enter newline")
	}

	step, total := m.r.Progress()
	if step == total {
		parts = append(parts, "enter submit")
	} else {
		parts = append(parts, "enter next")
	}
	if step > 1 {
		parts = append(parts, "shift+tab back")
	}
	parts = append(parts, "esc quit")
	return strings.Join(parts, " • ")
}

// RunFill runs the fill-out screen until the respondent finishes or quits
func RunFill(ctx context.Context, form models.Form, submit runner.Submitter, opts ...tea.ProgramOption) error {
	m, err := NewFill(ctx, form, submit)
	if err != nil {
		return err
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("fill-out screen failed: %w", err)
	}

	if m.submitErr != nil {
		return m.submitErr
	}
	if !m.done {
		return ErrAborted
	}
	return nil
}
