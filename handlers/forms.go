// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/triddle/auth"
	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/middleware"
	"github.com/danielhkuo/triddle/models"
)

var errFormNotFound = errors.New("form not found")

type FormHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFormHandler(db *sql.DB, cfg cliparse.Config) *FormHandler {
	return &FormHandler{db: db, cfg: cfg}
}

// CreateForm handles POST /forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	in, ok := parseFormInput(w, r)
	if !ok {
		return
	}

	formID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate form ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	questions, err := json.Marshal(in.Questions)
	if err != nil {
		slog.Error("failed to encode questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	now := time.Now().UTC()
	form := models.Form{
		ID:          formID,
		UserID:      user.ID,
		Title:       in.Title,
		Description: in.Description,
		Questions:   in.Questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO forms (id, user_id, title, description, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, form.ID, form.UserID, form.Title, form.Description, string(questions), form.CreatedAt, form.UpdatedAt)

	if err != nil {
		slog.Error("failed to insert form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	slog.Info("form created", "form_id", form.ID, "user_id", user.ID, "questions", len(form.Questions))

	middleware.JSONResponse(w, http.StatusCreated, models.FormEnvelope{
		Success: true,
		Data:    h.withShareURL(form),
	})
}

// ListForms handles GET /forms
// Returns the caller's forms, newest first
func (h *FormHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, user_id, title, description, questions, created_at, updated_at
		FROM forms
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, user.ID)
	if err != nil {
		slog.Error("failed to query forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	forms := []models.Form{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			slog.Error("failed to scan form", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		forms = append(forms, h.withShareURL(form))
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormListEnvelope{
		Success: true,
		Data:    forms,
	})
}

// GetForm handles GET /forms/{id}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormEnvelope{
		Success: true,
		Data:    h.withShareURL(form),
	})
}

// UpdateForm handles PUT /forms/{id}
// The question list is replaced whole
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	in, ok := parseFormInput(w, r)
	if !ok {
		return
	}

	questions, err := json.Marshal(in.Questions)
	if err != nil {
		slog.Error("failed to encode questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update form")
		return
	}

	form.Title = in.Title
	form.Description = in.Description
	form.Questions = in.Questions
	form.UpdatedAt = time.Now().UTC()

	_, err = h.db.ExecContext(r.Context(), `
		UPDATE forms
		SET title = $1, description = $2, questions = $3, updated_at = $4
		WHERE id = $5
	`, form.Title, form.Description, string(questions), form.UpdatedAt, form.ID)

	if err != nil {
		slog.Error("failed to update form", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update form")
		return
	}

	slog.Info("form updated", "form_id", form.ID, "questions", len(form.Questions))

	middleware.JSONResponse(w, http.StatusOK, models.FormEnvelope{
		Success: true,
		Data:    h.withShareURL(form),
	})
}

// DeleteForm handles DELETE /forms/{id}
// Removes the form and every response to it
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(r.Context(), `DELETE FROM responses WHERE form_id = $1`, form.ID); err != nil {
		slog.Error("failed to delete responses", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}
	if _, err := tx.ExecContext(r.Context(), `DELETE FROM forms WHERE id = $1`, form.ID); err != nil {
		slog.Error("failed to delete form", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}
	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}

	slog.Info("form deleted", "form_id", form.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Form deleted",
	})
}

// GetPublicForm handles GET /forms/public/{id}
// Anyone with the link may read the form; the owner is not disclosed
func (h *FormHandler) GetPublicForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form id is required")
		return
	}

	form, err := loadForm(r.Context(), h.db, formID)
	if errors.Is(err, errFormNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to load form", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	form.UserID = ""
	middleware.JSONResponse(w, http.StatusOK, models.FormEnvelope{
		Success: true,
		Data:    form,
	})
}

func (h *FormHandler) withShareURL(form models.Form) models.Form {
	form.ShareURL = models.ShareLink(h.cfg.PublicOrigin, form.ID)
	return form
}

// parseFormInput decodes and validates a form body, writing the error
// response itself when it fails
func parseFormInput(w http.ResponseWriter, r *http.Request) (models.FormInput, bool) {
	var in models.FormInput
	if err := middleware.ParseJSONBody(r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return in, false
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Questions == nil {
		in.Questions = []models.Question{}
	}

	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (models.Form, error) {
	var form models.Form
	var questions string
	err := row.Scan(&form.ID, &form.UserID, &form.Title, &form.Description,
		&questions, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		return models.Form{}, err
	}
	if err := json.Unmarshal([]byte(questions), &form.Questions); err != nil {
		return models.Form{}, fmt.Errorf("corrupt questions for form %s: %w", form.ID, err)
	}
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}
	return form, nil
}

func loadForm(ctx context.Context, db *sql.DB, formID string) (models.Form, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, questions, created_at, updated_at
		FROM forms
		WHERE id = $1
	`, formID)

	form, err := scanForm(row)
	if err == sql.ErrNoRows {
		return models.Form{}, errFormNotFound
	}
	return form, err
}

// ownedForm loads a form and checks that the authenticated user owns it.
// On failure the error response has already been written.
func ownedForm(w http.ResponseWriter, r *http.Request, db *sql.DB, formID string) (models.Form, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized to access this route")
		return models.Form{}, false
	}
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form id is required")
		return models.Form{}, false
	}

	form, err := loadForm(r.Context(), db, formID)
	if errors.Is(err, errFormNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return models.Form{}, false
	}
	if err != nil {
		slog.Error("failed to load form", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Form{}, false
	}

	if form.UserID != user.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not authorized to access this form")
		return models.Form{}, false
	}
	return form, true
}
