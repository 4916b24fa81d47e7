// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
)

// ValidationError names the offending field of a form definition or answer set
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the structural rules of a single question
func (q Question) Validate() error {
	if q.ID == "" {
		return invalid("id", "is required")
	}
	if !q.Type.Valid() {
		return invalid(q.ID+".type", "unknown question type %q", q.Type)
	}

	if !q.Type.HasOptions() {
		if len(q.Options) > 0 {
			return invalid(q.ID+".options", "only radio and checkbox questions have options")
		}
		return nil
	}

	if len(q.Options) == 0 {
		return invalid(q.ID+".options", "%s questions need at least one option", q.Type)
	}
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		if o.ID == "" {
			return invalid(fmt.Sprintf("%s.options[%d].id", q.ID, i), "is required")
		}
		if seen[o.ID] {
			return invalid(fmt.Sprintf("%s.options[%d].id", q.ID, i), "duplicate option id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

// ValidateQuestions checks every question and the uniqueness of question ids
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			if ve, ok := err.(*ValidationError); ok && ve.Field == "id" {
				ve.Field = fmt.Sprintf("questions[%d].id", i)
			}
			return err
		}
		if seen[q.ID] {
			return invalid(fmt.Sprintf("questions[%d].id", i), "duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Validate checks a form definition before it is stored
func (in FormInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "is required")
	}
	return ValidateQuestions(in.Questions)
}

// ValidateAnswers checks a submitted answer set against its form: every key
// must be a question of the form, checkbox answers must be lists and every
// other answer a string, choice answers must name existing options, and
// required questions must be answered.
func (f Form) ValidateAnswers(data map[string]Answer) error {
	for id, a := range data {
		q, ok := f.Question(id)
		if !ok {
			return invalid("data."+id, "not a question of this form")
		}
		if a.Multi != (q.Type == TypeCheckbox) {
			if a.Multi {
				return invalid("data."+id, "expected a single value")
			}
			return invalid("data."+id, "expected a list of option ids")
		}
		switch q.Type {
		case TypeRadio:
			if a.Value != "" {
				if _, ok := q.Option(a.Value); !ok {
					return invalid("data."+id, "unknown option %q", a.Value)
				}
			}
		case TypeCheckbox:
			for _, v := range a.Values {
				if _, ok := q.Option(v); !ok {
					return invalid("data."+id, "unknown option %q", v)
				}
			}
		}
	}

	for _, q := range f.Questions {
		if !q.Required {
			continue
		}
		if a, ok := data[q.ID]; !ok || a.IsEmpty() {
			return invalid("data."+q.ID, "is required")
		}
	}
	return nil
}
