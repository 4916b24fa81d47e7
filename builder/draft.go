// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package builder

import (
	"context"
	"fmt"

	"github.com/danielhkuo/triddle/models"
)

// Defaults for a brand new form
const (
	DefaultTitle = "Untitled Form"
	StarterTitle = "What's your name?"
)

// Saver persists a form definition. apiclient's FormsAPI satisfies it.
type Saver interface {
	Create(ctx context.Context, in models.FormInput) (models.Form, error)
	Update(ctx context.Context, id string, in models.FormInput) (models.Form, error)
}

// CommitResult describes a successful Commit
type CommitResult struct {
	Form    models.Form
	Created bool
}

// Draft stages edits to a form locally until Commit sends them in one
// whole-form write
type Draft struct {
	formID      string
	title       string
	description string
	builder     *Builder
	dirty       bool
	onChange    func([]models.Question)
}

// NewDraft starts an unsaved form with one required name question
func NewDraft() *Draft {
	d := &Draft{title: DefaultTitle, dirty: true}
	d.attach(New([]models.Question{{
		ID:          "q1",
		Type:        models.TypeText,
		Title:       StarterTitle,
		Placeholder: "Type your full name",
		Required:    true,
	}}))
	return d
}

// FromForm starts a clean draft of a saved form
func FromForm(form models.Form) *Draft {
	d := &Draft{
		formID:      form.ID,
		title:       form.Title,
		description: form.Description,
	}
	d.attach(New(form.Questions))
	return d
}

func (d *Draft) attach(b *Builder) {
	d.builder = b
	b.OnChange(func(qs []models.Question) {
		d.dirty = true
		if d.onChange != nil {
			d.onChange(qs)
		}
	})
}

// OnChange registers an observer for question list changes
func (d *Draft) OnChange(fn func([]models.Question)) { d.onChange = fn }

// Builder returns the question editor. Its mutations mark the draft dirty.
func (d *Draft) Builder() *Builder { return d.builder }

func (d *Draft) ID() string          { return d.formID }
func (d *Draft) Title() string       { return d.title }
func (d *Draft) Description() string { return d.description }
func (d *Draft) Dirty() bool         { return d.dirty }

// IsNew reports whether the form has never been saved
func (d *Draft) IsNew() bool { return d.formID == "" }

func (d *Draft) SetTitle(title string) {
	if title != d.title {
		d.title = title
		d.dirty = true
	}
}

func (d *Draft) SetDescription(description string) {
	if description != d.description {
		d.description = description
		d.dirty = true
	}
}

// Input is the request body Commit will send
func (d *Draft) Input() models.FormInput {
	return models.FormInput{
		Title:       d.title,
		Description: d.description,
		Questions:   d.builder.Questions(),
	}
}

// Commit validates the draft and saves it: create for a new form, whole
// replace otherwise. On error nothing in the draft changes. On success the
// draft adopts the saved form and is clean.
func (d *Draft) Commit(ctx context.Context, saver Saver) (CommitResult, error) {
	in := d.Input()
	if err := in.Validate(); err != nil {
		return CommitResult{}, err
	}

	var (
		form models.Form
		err  error
	)
	created := d.IsNew()
	if created {
		form, err = saver.Create(ctx, in)
	} else {
		form, err = saver.Update(ctx, d.formID, in)
	}
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to save form: %w", err)
	}

	d.formID = form.ID
	d.title = form.Title
	d.description = form.Description
	d.builder.questions = cloneAll(form.Questions)
	d.dirty = false

	return CommitResult{Form: form, Created: created}, nil
}
