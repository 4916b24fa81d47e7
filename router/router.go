// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/handlers"
	"github.com/danielhkuo/triddle/middleware"
)

// APIPrefix is where the JSON API is mounted
const APIPrefix = "/api"

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	formHandler := handlers.NewFormHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(authHandler.UserForToken, h))
	}

	api := http.NewServeMux()

	// Accounts
	api.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	api.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	api.HandleFunc("GET /auth/me", protected(authHandler.Me))
	api.HandleFunc("POST /auth/logout", protected(authHandler.Logout))

	// Form management (owner only)
	api.HandleFunc("POST /forms", protected(formHandler.CreateForm))
	api.HandleFunc("GET /forms", protected(formHandler.ListForms))
	api.HandleFunc("GET /forms/{id}", protected(formHandler.GetForm))
	api.HandleFunc("PUT /forms/{id}", protected(formHandler.UpdateForm))
	api.HandleFunc("DELETE /forms/{id}", protected(formHandler.DeleteForm))

	// Filling out (public)
	api.HandleFunc("GET /forms/public/{id}", middleware.WithLogging(formHandler.GetPublicForm))
	api.HandleFunc("POST /responses", middleware.WithLogging(responseHandler.SubmitResponse))

	// Responses (owner only)
	api.HandleFunc("GET /responses/{formId}", protected(responseHandler.ListResponses))
	api.HandleFunc("GET /responses/{formId}/export", protected(responseHandler.ExportResponses))
	api.HandleFunc("GET /responses/{formId}/{responseId}", protected(responseHandler.GetResponse))
	api.HandleFunc("DELETE /responses/{formId}/{responseId}", protected(responseHandler.DeleteResponse))

	mux.Handle(APIPrefix+"/", http.StripPrefix(APIPrefix, api))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("triddle API v1"))
	})

	return mux
}
