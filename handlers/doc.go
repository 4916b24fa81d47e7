// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Triddle API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration, login, logout and session lookup
  - FormHandler: Form CRUD and the public form view
  - ResponseHandler: Response submission, listing, deletion and CSV export

	formHandler := handlers.NewFormHandler(db, cfg)

# Sessions

Login and register return an opaque bearer token. Only its SHA-256 hash is
stored. AuthHandler.UserForToken resolves a token for middleware.RequireAuth
and drops expired sessions.

# Forms

Questions are stored as one JSON document per form and always replaced
whole on update. Every write is checked with models.FormInput.Validate.
Forms are private to their owner except through GET /forms/public/{id},
which omits the owner id.

# Responses

Submissions are public. The answers are checked against the current form
with models.Form.ValidateAnswers before they are stored, and are never
modified afterwards.

All errors use the {success:false, error, message} envelope written by
middleware.ErrorResponse.
*/
package handlers
