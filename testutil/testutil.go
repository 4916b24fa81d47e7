// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/triddle/auth"
	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/db"
	"github.com/danielhkuo/triddle/models"
)

// TestPassword is the password of every user made by CreateTestUser
const TestPassword = "password123"

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Each call gets its own database, so tests may run in parallel.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("file:triddle_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := db.Open(db.TypeSQLite, name)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A shared-cache memory database lives as long as one connection does
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		PublicOrigin: "http://triddle.test",
		SessionTTL:   time.Hour,
	}
}

// CreateTestUser inserts a user with TestPassword and returns it
func CreateTestUser(t *testing.T, conn *sql.DB, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID, _ := auth.GenerateID(12)
	user := models.User{
		ID:        userID,
		Name:      "Test User",
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Name, user.Email, hash, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestSession logs a user in and returns the raw bearer token.
// A negative ttl creates an already expired session.
func CreateTestSession(t *testing.T, conn *sql.DB, userID string, ttl time.Duration) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO sessions (token_hash, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, auth.HashToken(token), userID, now, now.Add(ttl))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestForm stores a form owned by userID and returns its ID
func CreateTestForm(t *testing.T, conn *sql.DB, userID, title string, questions []models.Question) string {
	t.Helper()

	if questions == nil {
		questions = []models.Question{}
	}
	encoded, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("Failed to encode questions: %v", err)
	}

	formID, _ := auth.GenerateID(12)
	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO forms (id, user_id, title, description, questions, created_at, updated_at)
		VALUES ($1, $2, $3, '', $4, $5, $6)
	`, formID, userID, title, string(encoded), now, now)
	if err != nil {
		t.Fatalf("Failed to create test form: %v", err)
	}

	return formID
}

// CreateTestResponse stores a response to formID and returns its ID
func CreateTestResponse(t *testing.T, conn *sql.DB, formID string, data map[string]models.Answer, submittedAt time.Time) string {
	t.Helper()

	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to encode answers: %v", err)
	}

	responseID, _ := auth.GenerateID(12)
	_, err = conn.Exec(`
		INSERT INTO responses (id, form_id, data, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, responseID, formID, string(encoded), submittedAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// BearerHeader builds the Authorization header map for MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
