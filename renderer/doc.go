// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package renderer maps a question to an input control and writes every
interaction into the session answers held by formctx.

	ctrl := renderer.For(q, ctx, func(id string) { clearError(id) })
	switch ctrl.Kind() {
	case renderer.KindCheckboxGroup:
		ctrl.Toggle("o1", true)
	}

Control kinds by question type:

	text, email, phone  KindInput
	textarea            KindTextArea
	radio               KindRadioGroup
	checkbox            KindCheckboxGroup
	date                KindDatePicker

Calling a handler that does not fit the control returns ErrWrongControl.
*/
package renderer
