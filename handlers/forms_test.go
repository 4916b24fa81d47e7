// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/testutil"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Type: models.TypeText, Title: "Name", Required: true},
		{ID: "q2", Type: models.TypeRadio, Title: "Color", Options: []models.Option{
			{ID: "o1", Label: "Red"},
			{ID: "o2", Label: "Blue"},
		}},
	}
}

func TestCreateForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(db, cfg)
	user := testutil.CreateTestUser(t, db, "owner@example.com")
	token := testutil.CreateTestSession(t, db, user.ID, time.Hour)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "valid form",
			body:       models.FormInput{Title: "Survey", Questions: sampleQuestions()},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty question list",
			body:       models.FormInput{Title: "Empty"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			body:       models.FormInput{Title: "   ", Questions: sampleQuestions()},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "radio without options",
			body: models.FormInput{Title: "Bad", Questions: []models.Question{
				{ID: "q1", Type: models.TypeRadio, Title: "Pick"},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate question ids",
			body: models.FormInput{Title: "Bad", Questions: []models.Question{
				{ID: "q1", Type: models.TypeText},
				{ID: "q1", Type: models.TypeEmail},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown type",
			body: models.FormInput{Title: "Bad", Questions: []models.Question{
				{ID: "q1", Type: "slider"},
			}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/forms", tt.body, testutil.BearerHeader(token))
			w := httptest.NewRecorder()
			withAuth(db, handler.CreateForm)(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var resp models.FormEnvelope
			testutil.AssertJSON(t, w, &resp)
			if resp.Data.ID == "" || resp.Data.UserID != user.ID {
				t.Errorf("unexpected form: %+v", resp.Data)
			}
			if resp.Data.ShareURL != "http://triddle.test/form/"+resp.Data.ID {
				t.Errorf("unexpected share url %s", resp.Data.ShareURL)
			}
			if resp.Data.Questions == nil {
				t.Error("questions should be [] not null")
			}
		})
	}
}

func TestCreateForm_RequiresAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/forms", models.FormInput{Title: "x"}, nil)
	w := httptest.NewRecorder()
	withAuth(db, handler.CreateForm)(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestListForms_OnlyOwn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())
	alice := testutil.CreateTestUser(t, db, "alice@example.com")
	bob := testutil.CreateTestUser(t, db, "bob@example.com")
	testutil.CreateTestForm(t, db, alice.ID, "A1", nil)
	testutil.CreateTestForm(t, db, alice.ID, "A2", sampleQuestions())
	testutil.CreateTestForm(t, db, bob.ID, "B1", nil)

	token := testutil.CreateTestSession(t, db, alice.ID, time.Hour)
	req := testutil.MakeRequest("GET", "/forms", nil, testutil.BearerHeader(token))
	w := httptest.NewRecorder()
	withAuth(db, handler.ListForms)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.FormListEnvelope
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(resp.Data))
	}
	for _, f := range resp.Data {
		if f.UserID != alice.ID {
			t.Errorf("form %s belongs to %s", f.ID, f.UserID)
		}
	}
}

func TestGetForm_Ownership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())
	alice := testutil.CreateTestUser(t, db, "alice@example.com")
	bob := testutil.CreateTestUser(t, db, "bob@example.com")
	formID := testutil.CreateTestForm(t, db, alice.ID, "Survey", sampleQuestions())

	tests := []struct {
		name       string
		userID     string
		formID     string
		wantStatus int
	}{
		{"owner", alice.ID, formID, http.StatusOK},
		{"someone else", bob.ID, formID, http.StatusForbidden},
		{"missing form", alice.ID, "nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := testutil.CreateTestSession(t, db, tt.userID, time.Hour)
			req := testutil.MakeRequest("GET", "/forms/"+tt.formID, nil, testutil.BearerHeader(token))
			req.SetPathValue("id", tt.formID)
			w := httptest.NewRecorder()
			withAuth(db, handler.GetForm)(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus == http.StatusOK {
				var resp models.FormEnvelope
				testutil.AssertJSON(t, w, &resp)
				if len(resp.Data.Questions) != 2 || resp.Data.Questions[1].Options[1].Label != "Blue" {
					t.Errorf("questions did not round-trip: %+v", resp.Data.Questions)
				}
			}
		})
	}
}

func TestUpdateForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "owner@example.com")
	token := testutil.CreateTestSession(t, db, user.ID, time.Hour)
	formID := testutil.CreateTestForm(t, db, user.ID, "Old", sampleQuestions())

	update := models.FormInput{
		Title:       "New",
		Description: "Now with dates",
		Questions: []models.Question{
			{ID: "q3", Type: models.TypeDate, Title: "When"},
		},
	}
	req := testutil.MakeRequest("PUT", "/forms/"+formID, update, testutil.BearerHeader(token))
	req.SetPathValue("id", formID)
	w := httptest.NewRecorder()
	withAuth(db, handler.UpdateForm)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.FormEnvelope
	testutil.AssertJSON(t, w, &resp)

	if resp.Data.Title != "New" || resp.Data.Description != "Now with dates" {
		t.Errorf("unexpected form: %+v", resp.Data)
	}
	if len(resp.Data.Questions) != 1 || resp.Data.Questions[0].ID != "q3" {
		t.Errorf("questions should be replaced whole, got %+v", resp.Data.Questions)
	}
	if !resp.Data.UpdatedAt.After(resp.Data.CreatedAt) && !resp.Data.UpdatedAt.Equal(resp.Data.CreatedAt) {
		t.Error("updatedAt went backwards")
	}

	// Invalid update leaves the form alone
	req = testutil.MakeRequest("PUT", "/forms/"+formID, models.FormInput{Title: ""}, testutil.BearerHeader(token))
	req.SetPathValue("id", formID)
	w = httptest.NewRecorder()
	withAuth(db, handler.UpdateForm)(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var title string
	db.QueryRow("SELECT title FROM forms WHERE id = $1", formID).Scan(&title)
	if title != "New" {
		t.Errorf("expected title New, got %s", title)
	}
}

func TestDeleteForm_RemovesResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "owner@example.com")
	token := testutil.CreateTestSession(t, db, user.ID, time.Hour)
	formID := testutil.CreateTestForm(t, db, user.ID, "Survey", sampleQuestions())
	testutil.CreateTestResponse(t, db, formID, map[string]models.Answer{"q1": models.TextAnswer("Ada")}, time.Now())

	req := testutil.MakeRequest("DELETE", "/forms/"+formID, nil, testutil.BearerHeader(token))
	req.SetPathValue("id", formID)
	w := httptest.NewRecorder()
	withAuth(db, handler.DeleteForm)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var forms, responses int
	db.QueryRow("SELECT COUNT(*) FROM forms WHERE id = $1", formID).Scan(&forms)
	db.QueryRow("SELECT COUNT(*) FROM responses WHERE form_id = $1", formID).Scan(&responses)
	if forms != 0 || responses != 0 {
		t.Errorf("expected form and responses gone, got %d forms and %d responses", forms, responses)
	}
}

func TestGetPublicForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFormHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "owner@example.com")
	formID := testutil.CreateTestForm(t, db, user.ID, "Survey", sampleQuestions())

	req := testutil.MakeRequest("GET", "/forms/public/"+formID, nil, nil)
	req.SetPathValue("id", formID)
	w := httptest.NewRecorder()
	handler.GetPublicForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), user.ID) {
		t.Error("public form must not reveal the owner")
	}

	req = testutil.MakeRequest("GET", "/forms/public/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.GetPublicForm(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
