// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/triddle/formctx"
	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/renderer"
)

var (
	ErrNoQuestions = errors.New("form has no questions")
	ErrComplete    = errors.New("form already completed")
)

// Submitter receives the finished answers
type Submitter interface {
	Submit(ctx context.Context, formID string, answers map[string]models.Answer) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, formID string, answers map[string]models.Answer) error

func (f SubmitterFunc) Submit(ctx context.Context, formID string, answers map[string]models.Answer) error {
	return f(ctx, formID, answers)
}

// Key is a keyboard shortcut understood by HandleKey
type Key int

const (
	KeyConfirm Key = iota + 1
	KeyBack
)

// Runner steps a respondent through a form one question at a time.
// States are Answering(i) for i in [0, N) and Complete, which is terminal.
type Runner struct {
	fctx      *formctx.Context
	control   *renderer.Control
	submitter Submitter

	err       error
	submitErr error
}

// New starts a session at the first question with no answers
func New(form models.Form, submitter Submitter) (*Runner, error) {
	if len(form.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if submitter == nil {
		return nil, errors.New("runner needs a submitter")
	}

	r := &Runner{
		fctx:      formctx.New(form),
		submitter: submitter,
	}
	r.control = renderer.For(form.Questions[0], r.fctx, func(string) {
		r.err = nil
	})
	return r, nil
}

func (r *Runner) Form() models.Form                 { return r.fctx.Form() }
func (r *Runner) Index() int                        { return r.fctx.Index() }
func (r *Runner) Complete() bool                    { return r.fctx.Complete() }
func (r *Runner) Answers() map[string]models.Answer { return r.fctx.Answers() }
func (r *Runner) Control() *renderer.Control        { return r.control }
func (r *Runner) Current() (models.Question, bool)  { return r.fctx.Current() }
func (r *Runner) Error() error                      { return r.err }
func (r *Runner) SubmitError() error                { return r.submitErr }

// Progress returns the 1-based step and the question count
func (r *Runner) Progress() (step, total int) {
	return r.fctx.Index() + 1, r.fctx.Len()
}

// Next validates the active question and advances. Leaving the last
// question completes the session and hands the answers to the submitter,
// exactly once. A submit error is returned and kept in SubmitError; the
// session stays complete.
func (r *Runner) Next(ctx context.Context) error {
	if r.fctx.Complete() {
		return ErrComplete
	}

	q, _ := r.fctx.Current()
	a, ok := r.fctx.Answer(q.ID)
	if err := renderer.Validate(q, a, ok); err != nil {
		r.err = err
		return err
	}
	r.err = nil

	i := r.fctx.Index()
	if i < r.fctx.Len()-1 {
		r.fctx.SetIndex(i + 1)
		next, _ := r.fctx.Current()
		r.control.Sync(next)
		return nil
	}

	r.fctx.MarkComplete()
	if err := r.submitter.Submit(ctx, r.fctx.Form().ID, r.fctx.Answers()); err != nil {
		r.submitErr = err
		return fmt.Errorf("failed to submit response: %w", err)
	}
	return nil
}

// Previous goes back one question without validating or clearing anything.
// It reports whether the index changed.
func (r *Runner) Previous() bool {
	if r.fctx.Complete() || r.fctx.Index() == 0 {
		return false
	}
	r.fctx.SetIndex(r.fctx.Index() - 1)
	q, _ := r.fctx.Current()
	r.control.Sync(q)
	r.err = nil
	return true
}

// HandleKey maps keyboard shortcuts to transitions. Keys are ignored once
// the session is complete.
func (r *Runner) HandleKey(ctx context.Context, k Key) error {
	if r.fctx.Complete() {
		return nil
	}
	switch k {
	case KeyConfirm:
		return r.Next(ctx)
	case KeyBack:
		r.Previous()
	}
	return nil
}
