// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package renderer

import "github.com/danielhkuo/triddle/models"

// RequiredError blocks leaving a required question without an answer
type RequiredError struct {
	QuestionID string
	Title      string
}

func (e *RequiredError) Error() string {
	return "This field is required"
}

// Validate applies the required rule: absent, "" and an empty selection are
// unanswered. No per-type checks are made.
func Validate(q models.Question, a models.Answer, ok bool) error {
	if !q.Required {
		return nil
	}
	if !ok || a.IsEmpty() {
		return &RequiredError{QuestionID: q.ID, Title: q.Title}
	}
	return nil
}
