// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/triddle/formctx"
	"github.com/danielhkuo/triddle/models"
)

var (
	ErrWrongControl  = errors.New("handler does not match the control")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
)

// DateLayout is how date answers are stored
const DateLayout = "2006-01-02"

// Kind is the input control used for a question type
type Kind int

const (
	KindInput Kind = iota
	KindTextArea
	KindRadioGroup
	KindCheckboxGroup
	KindDatePicker
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTextArea:
		return "textarea"
	case KindRadioGroup:
		return "radio-group"
	case KindCheckboxGroup:
		return "checkbox-group"
	case KindDatePicker:
		return "date-picker"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindFor maps a question type to its control
func KindFor(t models.QuestionType) Kind {
	switch t {
	case models.TypeTextarea:
		return KindTextArea
	case models.TypeRadio:
		return KindRadioGroup
	case models.TypeCheckbox:
		return KindCheckboxGroup
	case models.TypeDate:
		return KindDatePicker
	default:
		return KindInput
	}
}

// Control binds one question to the session answers. Each handler replaces
// the stored answer and then calls onChange with the question id.
type Control struct {
	question models.Question
	ctx      *formctx.Context
	onChange func(questionID string)

	// mirror of the stored answer
	value models.Answer
	has   bool
}

// For builds the control for q. onChange may be nil.
func For(q models.Question, ctx *formctx.Context, onChange func(questionID string)) *Control {
	c := &Control{ctx: ctx, onChange: onChange}
	c.Sync(q)
	return c
}

// Sync switches the control to q and reloads the mirror from the session
func (c *Control) Sync(q models.Question) {
	c.question = q
	c.value, c.has = c.ctx.Answer(q.ID)
}

func (c *Control) Kind() Kind                   { return KindFor(c.question.Type) }
func (c *Control) Question() models.Question    { return c.question }
func (c *Control) Value() (models.Answer, bool) { return c.value, c.has }

// Text returns the scalar value, or "" for checkbox controls
func (c *Control) Text() string {
	if c.value.Multi {
		return ""
	}
	return c.value.Value
}

// Selected reports whether an option is chosen
func (c *Control) Selected(optionID string) bool {
	if c.value.Multi {
		for _, v := range c.value.Values {
			if v == optionID {
				return true
			}
		}
		return false
	}
	return c.has && c.value.Value == optionID
}

// SetText records free text verbatim
func (c *Control) SetText(s string) error {
	if k := c.Kind(); k != KindInput && k != KindTextArea {
		return fmt.Errorf("%w: SetText on %s", ErrWrongControl, k)
	}
	c.store(models.TextAnswer(s))
	return nil
}

// Select records a radio choice
func (c *Control) Select(optionID string) error {
	if k := c.Kind(); k != KindRadioGroup {
		return fmt.Errorf("%w: Select on %s", ErrWrongControl, k)
	}
	if _, ok := c.question.Option(optionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	c.store(models.TextAnswer(optionID))
	return nil
}

// Toggle checks or unchecks a checkbox option. Checked options keep the
// order in which they were first checked.
func (c *Control) Toggle(optionID string, checked bool) error {
	if k := c.Kind(); k != KindCheckboxGroup {
		return fmt.Errorf("%w: Toggle on %s", ErrWrongControl, k)
	}
	if _, ok := c.question.Option(optionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}

	values := make([]string, 0, len(c.value.Values)+1)
	for _, v := range c.value.Values {
		if v != optionID {
			values = append(values, v)
		}
	}
	if checked {
		if c.Selected(optionID) {
			// already checked: keep its position
			values = c.value.Values
		} else {
			values = append(values, optionID)
		}
	}
	c.store(models.ChoicesAnswer(values...))
	return nil
}

// SetDate records a date as YYYY-MM-DD
func (c *Control) SetDate(t time.Time) error {
	if k := c.Kind(); k != KindDatePicker {
		return fmt.Errorf("%w: SetDate on %s", ErrWrongControl, k)
	}
	c.store(models.TextAnswer(t.Format(DateLayout)))
	return nil
}

// SetDateString parses and records a typed date. The empty string clears the
// value to "".
func (c *Control) SetDateString(s string) error {
	if k := c.Kind(); k != KindDatePicker {
		return fmt.Errorf("%w: SetDateString on %s", ErrWrongControl, k)
	}
	if s == "" {
		c.store(models.TextAnswer(""))
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return c.SetDate(t)
}

// Clear removes the stored answer
func (c *Control) Clear() {
	c.ctx.ClearAnswer(c.question.ID)
	c.value, c.has = models.Answer{}, false
	c.changed()
}

func (c *Control) store(a models.Answer) {
	c.ctx.SetAnswer(c.question.ID, a)
	c.value, c.has = a, true
	c.changed()
}

func (c *Control) changed() {
	if c.onChange != nil {
		c.onChange(c.question.ID)
	}
}
