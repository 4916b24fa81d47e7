// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/triddle/auth"
	"github.com/danielhkuo/triddle/models"
)

// ErrUnauthenticated is returned by a UserLookup for unknown or expired tokens
var ErrUnauthenticated = errors.New("unauthenticated")

// UserLookup resolves a bearer token to its user
type UserLookup func(ctx context.Context, token string) (models.User, error)

type contextKey int

const (
	userKey contextKey = iota
	tokenKey
)

const notAuthorized = "Not authorized to access this route"

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user in the request context
func RequireAuth(lookup UserLookup, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ParseBearer(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, notAuthorized)
			return
		}

		user, err := lookup(r.Context(), token)
		switch {
		case errors.Is(err, ErrUnauthenticated):
			ErrorResponse(w, http.StatusUnauthorized, notAuthorized)
			return
		case err != nil:
			slog.Error("failed to look up session", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the user stored by RequireAuth
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// TokenFromContext returns the bearer token stored by RequireAuth
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
