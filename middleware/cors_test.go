// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantOrigin string
	}{
		{"matching origin", "https://triddle.app/", "GET", "https://triddle.app", false, http.StatusTeapot, "https://triddle.app"},
		{"other origin", "https://triddle.app", "GET", "https://evil.test", false, http.StatusTeapot, ""},
		{"no origin header", "https://triddle.app", "GET", "", false, http.StatusTeapot, ""},
		{"wildcard reflects", "*", "POST", "http://localhost:5173", false, http.StatusTeapot, "http://localhost:5173"},
		{"empty reflects", "", "GET", "http://localhost:5173", false, http.StatusTeapot, "http://localhost:5173"},
		{"preflight", "https://triddle.app", "OPTIONS", "https://triddle.app", true, http.StatusNoContent, "https://triddle.app"},
		{"preflight from other origin", "https://triddle.app", "OPTIONS", "https://evil.test", true, http.StatusNoContent, ""},
		{"plain options reaches handler", "https://triddle.app", "OPTIONS", "https://triddle.app", false, http.StatusTeapot, "https://triddle.app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/forms", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "PUT")
			}
			w := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Expected Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
			if tt.wantOrigin == "" {
				return
			}
			if got := w.Header().Get("Access-Control-Expose-Headers"); got != "Content-Disposition" {
				t.Errorf("Expected Content-Disposition exposed, got %q", got)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
				t.Errorf("Unexpected Allow-Headers %q", got)
			}
			if got := w.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Expected Vary: Origin, got %q", got)
			}
		})
	}
}
