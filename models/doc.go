// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the form schema and the request, response, and domain
types shared by the Triddle API service and its clients.

# Form Schema

A Form is an ordered list of Questions. Order is significant: it is both the
builder display order and the sequence the runner walks.

  - Question: id, type, title, placeholder, required, options
  - Option: id, label (radio and checkbox only)

Question types:

	TypeText     = "text"
	TypeEmail    = "email"
	TypeTextarea = "textarea"
	TypeRadio    = "radio"
	TypeCheckbox = "checkbox"
	TypeDate     = "date"
	TypePhone    = "phone"

# Answers

Answer holds either a string or, for checkbox questions, a list of option
ids. On the wire it is a JSON string or a JSON array of strings:

	{"q1": "Ann", "q2": ["o1"]}

# Validation

Structural checks run before a form is stored and before a response is
accepted:

	err := input.Validate()
	err := form.ValidateAnswers(data)

Both return *ValidationError naming the offending field.

# Request Types

  - RegisterRequest: name, email, password
  - LoginRequest: email, password
  - FormInput: title, description, questions (whole-array replace)
  - SubmitResponseRequest: formId, data

# Response Types

Every JSON body carries a success flag:

  - AuthResponse: success, token, user
  - FormEnvelope / FormListEnvelope: success, data
  - ResponseEnvelope / ResponseListEnvelope: success, data
  - ErrorResponse: success=false, error, message
*/
package models
