// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package builder

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/triddle/models"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeChange      = errors.New("question type cannot be changed")
	ErrUnknownType     = errors.New("unknown question type")
	ErrUnknownOption   = errors.New("unknown option")
	ErrLastOption      = errors.New("choice questions need at least one option")
	ErrNotChoice       = errors.New("question has no options")
)

// DefaultPlaceholder is given to every new question
const DefaultPlaceholder = "Enter your answer"

// Builder holds the ordered question list of a form being edited.
// It does no I/O; saving is the caller's job (see Draft).
type Builder struct {
	questions []models.Question
	onChange  func([]models.Question)
}

// New starts a builder from an existing question list. The list is copied.
func New(questions []models.Question) *Builder {
	b := &Builder{}
	b.questions = cloneAll(questions)
	return b
}

// OnChange registers an observer that receives a copy of the list after
// every successful mutation
func (b *Builder) OnChange(fn func([]models.Question)) {
	b.onChange = fn
}

// Questions returns a copy of the current list
func (b *Builder) Questions() []models.Question {
	return cloneAll(b.questions)
}

// Len returns the number of questions
func (b *Builder) Len() int {
	return len(b.questions)
}

// Question returns a copy of the question at index
func (b *Builder) Question(index int) (models.Question, error) {
	if err := b.check(index); err != nil {
		return models.Question{}, err
	}
	return b.questions[index].Clone(), nil
}

// Add appends a question of the given type with defaults filled in
func (b *Builder) Add(t models.QuestionType) (models.Question, error) {
	if !t.Valid() {
		return models.Question{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	q := models.Question{
		ID:          uuid.NewString(),
		Type:        t,
		Title:       fmt.Sprintf("Question %d", len(b.questions)+1),
		Placeholder: DefaultPlaceholder,
	}
	if t.HasOptions() {
		q.Options = []models.Option{
			{ID: "o1", Label: "Option 1"},
			{ID: "o2", Label: "Option 2"},
		}
	}

	b.questions = append(b.questions, q)
	b.changed()
	return q.Clone(), nil
}

// Update replaces the question at index wholesale. The id and type must stay
// the same.
func (b *Builder) Update(index int, q models.Question) error {
	if err := b.check(index); err != nil {
		return err
	}
	current := b.questions[index]
	if q.Type != current.Type {
		return fmt.Errorf("%w: %s to %s", ErrTypeChange, current.Type, q.Type)
	}
	if q.ID == "" {
		q.ID = current.ID
	}
	if q.ID != current.ID {
		return fmt.Errorf("question id cannot change from %s to %s", current.ID, q.ID)
	}
	if err := q.Validate(); err != nil {
		return err
	}

	b.questions[index] = q.Clone()
	b.changed()
	return nil
}

// Remove deletes the question at index; later questions shift down by one
func (b *Builder) Remove(index int) error {
	if err := b.check(index); err != nil {
		return err
	}
	b.questions = append(b.questions[:index], b.questions[index+1:]...)
	b.changed()
	return nil
}

// Reorder moves the question at src so that it ends up at dst
func (b *Builder) Reorder(src, dst int) error {
	if err := b.check(src); err != nil {
		return err
	}
	if err := b.check(dst); err != nil {
		return err
	}
	if src == dst {
		return nil
	}

	q := b.questions[src]
	rest := append(b.questions[:src:src], b.questions[src+1:]...)
	out := make([]models.Question, 0, len(b.questions))
	out = append(out, rest[:dst]...)
	out = append(out, q)
	out = append(out, rest[dst:]...)
	b.questions = out
	b.changed()
	return nil
}

// AddOption appends "Option N" to a choice question using the first free oN id
func (b *Builder) AddOption(index int) (models.Option, error) {
	q, err := b.choice(index)
	if err != nil {
		return models.Option{}, err
	}

	n := 1
	for {
		if _, taken := q.Option(fmt.Sprintf("o%d", n)); !taken {
			break
		}
		n++
	}
	opt := models.Option{ID: fmt.Sprintf("o%d", n), Label: fmt.Sprintf("Option %d", len(q.Options)+1)}

	b.questions[index].Options = append(q.Options, opt)
	b.changed()
	return opt, nil
}

// UpdateOption relabels an option
func (b *Builder) UpdateOption(index int, optionID, label string) error {
	q, err := b.choice(index)
	if err != nil {
		return err
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			b.questions[index].Options[i].Label = label
			b.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
}

// RemoveOption deletes an option; the last one cannot be removed
func (b *Builder) RemoveOption(index int, optionID string) error {
	q, err := b.choice(index)
	if err != nil {
		return err
	}
	for i := range q.Options {
		if q.Options[i].ID != optionID {
			continue
		}
		if len(q.Options) == 1 {
			return ErrLastOption
		}
		b.questions[index].Options = append(q.Options[:i:i], q.Options[i+1:]...)
		b.changed()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
}

func (b *Builder) choice(index int) (models.Question, error) {
	if err := b.check(index); err != nil {
		return models.Question{}, err
	}
	q := b.questions[index]
	if !q.Type.HasOptions() {
		return models.Question{}, fmt.Errorf("%w: %s", ErrNotChoice, q.Type)
	}
	return q, nil
}

func (b *Builder) check(index int) error {
	if index < 0 || index >= len(b.questions) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(b.questions))
	}
	return nil
}

func (b *Builder) changed() {
	if b.onChange != nil {
		b.onChange(b.Questions())
	}
}

func cloneAll(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
