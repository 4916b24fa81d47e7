// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every triddle route.

# Logging

WithLogging writes one slog line per request with method, path, status,
bytes, remote and duration_ms. 5xx responses log at ERROR and 4xx at WARN.

# Authentication

RequireAuth resolves the bearer token through a lookup function and answers
401 when the token is missing, malformed, unknown or expired:

	api.HandleFunc("GET /forms", middleware.WithLogging(
		middleware.RequireAuth(authHandler.UserForToken, formHandler.ListForms)))

Handlers read the caller back from the context:

	user, ok := middleware.UserFromContext(r.Context())

# JSON

	middleware.JSONResponse(w, http.StatusOK, models.FormEnvelope{...})
	middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")

Error bodies always carry success=false. ParseJSONBody refuses empty bodies
and anything over MaxBodyBytes.

# CORS

CORS(origin, mux) admits the configured web origin and exposes
Content-Disposition for CSV exports. Pass "*" to admit any origin.
*/
package middleware
