// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/testutil"
)

func newMux(t *testing.T) (*sql.DB, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	return db, NewRouter(db, testutil.GetTestConfig())
}

func TestPlainEndpoints(t *testing.T) {
	_, mux := newMux(t)

	for path, want := range map[string]string{
		"/health": "OK",
		"/":       "triddle API v1",
	} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Errorf("GET %s: got %d %q, want 200 %q", path, w.Code, w.Body.String(), want)
		}
	}
}

func TestNewRouter_PatternsCoexist(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("NewRouter panicked: %v", r)
		}
	}()
	NewRouter(nil, cliparse.Config{})
}

func TestUnknownPathsNotFound(t *testing.T) {
	_, mux := newMux(t)

	for _, path := range []string{"/nope", "/form/abc", "/api/nope"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestRoutesMounted(t *testing.T) {
	_, mux := newMux(t)

	// Anything but 405 means a handler is mounted
	testCases := []struct {
		method string
		path   string
	}{
		// Health and root
		{"GET", "/health"},
		{"GET", "/"},

		// Accounts
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"GET", "/api/auth/me"},
		{"POST", "/api/auth/logout"},

		// Forms
		{"POST", "/api/forms"},
		{"GET", "/api/forms"},
		{"GET", "/api/forms/test-id"},
		{"PUT", "/api/forms/test-id"},
		{"DELETE", "/api/forms/test-id"},
		{"GET", "/api/forms/public/test-id"},

		// Responses
		{"POST", "/api/responses"},
		{"GET", "/api/responses/test-id"},
		{"GET", "/api/responses/test-id/export"},
		{"GET", "/api/responses/test-id/resp-id"},
		{"DELETE", "/api/responses/test-id/resp-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, mux := newMux(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/me"},
		{"GET", "/api/forms"},
		{"GET", "/api/forms/test-id"},
		{"GET", "/api/responses/test-id"},
		{"GET", "/api/responses/test-id/export"},
	}

	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestUnmountedMethods(t *testing.T) {
	_, mux := newMux(t)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		// PATCH is never used; forms are replaced with PUT
		{"PATCH to form", "PATCH", "/api/forms/test-id", http.StatusMethodNotAllowed},
		{"DELETE form list", "DELETE", "/api/forms", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathValues(t *testing.T) {
	db, mux := newMux(t)
	user := testutil.CreateTestUser(t, db, "owner@example.com")
	token := testutil.CreateTestSession(t, db, user.ID, time.Hour)
	formID := testutil.CreateTestForm(t, db, user.ID, "Routed", nil)
	responseID := testutil.CreateTestResponse(t, db, formID, map[string]models.Answer{}, time.Now())

	t.Run("form ID extraction", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/forms/"+formID, nil, testutil.BearerHeader(token))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.FormEnvelope
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.ID != formID {
			t.Errorf("expected form %s, got %s", formID, resp.Data.ID)
		}
	})

	t.Run("response ID extraction", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/responses/"+formID+"/"+responseID, nil, testutil.BearerHeader(token))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ResponseEnvelope
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.ID != responseID {
			t.Errorf("expected response %s, got %s", responseID, resp.Data.ID)
		}
	})

	t.Run("export beats response ID", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/responses/"+formID+"/export", nil, testutil.BearerHeader(token))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
			t.Errorf("expected csv, got %s", ct)
		}
	})
}
