// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package formctx holds the state of one fill-out session: the form being
// answered, the active question index and the answers collected so far.
// Nothing here is persisted; dropping the Context abandons the session.
package formctx

import (
	"github.com/danielhkuo/triddle/models"
)

type Context struct {
	form     models.Form
	index    int
	complete bool
	answers  map[string]models.Answer
}

// New starts a session at the first question with no answers
func New(form models.Form) *Context {
	return &Context{
		form:    form,
		answers: make(map[string]models.Answer),
	}
}

func (c *Context) Form() models.Form { return c.form }
func (c *Context) Len() int          { return len(c.form.Questions) }
func (c *Context) Index() int        { return c.index }
func (c *Context) Complete() bool    { return c.complete }

// SetIndex moves the active question. Out-of-range values are ignored.
func (c *Context) SetIndex(i int) {
	if i >= 0 && i < len(c.form.Questions) {
		c.index = i
	}
}

// MarkComplete ends the session; there is no way back
func (c *Context) MarkComplete() { c.complete = true }

// Current returns the active question
func (c *Context) Current() (models.Question, bool) {
	if c.index < 0 || c.index >= len(c.form.Questions) {
		return models.Question{}, false
	}
	return c.form.Questions[c.index], true
}

// Answer returns the stored answer for a question
func (c *Context) Answer(questionID string) (models.Answer, bool) {
	a, ok := c.answers[questionID]
	if a.Multi {
		a.Values = append([]string{}, a.Values...)
	}
	return a, ok
}

// SetAnswer replaces the stored answer for a question
func (c *Context) SetAnswer(questionID string, a models.Answer) {
	if a.Multi {
		a.Values = append([]string{}, a.Values...)
	}
	c.answers[questionID] = a
}

// ClearAnswer forgets the answer for a question
func (c *Context) ClearAnswer(questionID string) {
	delete(c.answers, questionID)
}

// Answers returns a copy of every stored answer
func (c *Context) Answers() map[string]models.Answer {
	out := make(map[string]models.Answer, len(c.answers))
	for id := range c.answers {
		out[id], _ = c.Answer(id)
	}
	return out
}

// Reset returns to the first question with no answers
func (c *Context) Reset() {
	c.index = 0
	c.complete = false
	c.answers = make(map[string]models.Answer)
}
