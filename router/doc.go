// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Triddle API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

The JSON API is mounted under /api; /health and / sit at the top level.

# Endpoints

Health:

	GET /health

Accounts:

	POST /api/auth/register - Create account, returns token
	POST /api/auth/login    - Returns token
	GET  /api/auth/me       - Current user (bearer)
	POST /api/auth/logout   - End session (bearer)

Forms (bearer, owner only):

	POST   /api/forms      - Create form
	GET    /api/forms      - List own forms
	GET    /api/forms/{id} - Get form
	PUT    /api/forms/{id} - Replace title, description and questions
	DELETE /api/forms/{id} - Delete form and its responses

Public:

	GET  /api/forms/public/{id} - Form schema for respondents
	POST /api/responses         - Submit answers

Responses (bearer, owner only):

	GET    /api/responses/{formId}              - List responses
	GET    /api/responses/{formId}/export       - CSV download
	GET    /api/responses/{formId}/{responseId} - Single response
	DELETE /api/responses/{formId}/{responseId} - Delete response

# Handler Initialization

	authHandler := handlers.NewAuthHandler(db, cfg)
	formHandler := handlers.NewFormHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)

Bearer routes are wrapped in middleware.RequireAuth with
authHandler.UserForToken as the session lookup.
*/
package router
