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
	"time"

	"github.com/danielhkuo/triddle/auth"
	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/middleware"
	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/report"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// SubmitResponse handles POST /responses
// Public: anyone holding the form link may answer it
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FormID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formId is required")
		return
	}
	if req.Data == nil {
		req.Data = map[string]models.Answer{}
	}

	form, err := loadForm(r.Context(), h.db, req.FormID)
	if errors.Is(err, errFormNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to load form", "error", err, "form_id", req.FormID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := form.ValidateAnswers(req.Data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	responseID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate response ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	data, err := json.Marshal(req.Data)
	if err != nil {
		slog.Error("failed to encode answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	resp := models.FormResponse{
		ID:          responseID,
		FormID:      form.ID,
		Data:        req.Data,
		SubmittedAt: time.Now().UTC(),
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO responses (id, form_id, data, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, resp.ID, resp.FormID, string(data), resp.SubmittedAt)

	if err != nil {
		slog.Error("failed to insert response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	slog.Info("response submitted", "form_id", form.ID, "response_id", resp.ID, "answers", len(resp.Data))

	middleware.JSONResponse(w, http.StatusCreated, models.ResponseEnvelope{
		Success: true,
		Data:    resp,
	})
}

// ListResponses handles GET /responses/{formId}
// Owner only; oldest submission first
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("formId"))
	if !ok {
		return
	}

	responses, err := loadResponses(r.Context(), h.db, form.ID)
	if err != nil {
		slog.Error("failed to load responses", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponseListEnvelope{
		Success: true,
		Data:    responses,
	})
}

// GetResponse handles GET /responses/{formId}/{responseId}
func (h *ResponseHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("formId"))
	if !ok {
		return
	}

	responseID := r.PathValue("responseId")
	var resp models.FormResponse
	var data string
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, form_id, data, submitted_at
		FROM responses
		WHERE id = $1 AND form_id = $2
	`, responseID, form.ID).Scan(&resp.ID, &resp.FormID, &data, &resp.SubmittedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := json.Unmarshal([]byte(data), &resp.Data); err != nil {
		slog.Error("failed to decode response data", "error", err, "response_id", resp.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponseEnvelope{
		Success: true,
		Data:    resp,
	})
}

// DeleteResponse handles DELETE /responses/{formId}/{responseId}
func (h *ResponseHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("formId"))
	if !ok {
		return
	}

	responseID := r.PathValue("responseId")
	result, err := h.db.ExecContext(r.Context(), `
		DELETE FROM responses WHERE id = $1 AND form_id = $2
	`, responseID, form.ID)
	if err != nil {
		slog.Error("failed to delete response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}

	slog.Info("response deleted", "form_id", form.ID, "response_id", responseID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Response deleted",
	})
}

// ExportResponses handles GET /responses/{formId}/export
// Streams every response as CSV, one column per question
func (h *ResponseHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	form, ok := ownedForm(w, r, h.db, r.PathValue("formId"))
	if !ok {
		return
	}

	responses, err := loadResponses(r.Context(), h.db, form.ID)
	if err != nil {
		slog.Error("failed to load responses", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(form)))
	w.WriteHeader(http.StatusOK)
	if err := report.WriteCSV(w, form, responses, time.UTC); err != nil {
		// Headers are gone; all we can do is log
		slog.Error("failed to write csv", "error", err, "form_id", form.ID)
	}
}

func loadResponses(ctx context.Context, db *sql.DB, formID string) ([]models.FormResponse, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, form_id, data, submitted_at
		FROM responses
		WHERE form_id = $1
		ORDER BY submitted_at ASC, id ASC
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.FormResponse{}
	for rows.Next() {
		var resp models.FormResponse
		var data string
		if err := rows.Scan(&resp.ID, &resp.FormID, &data, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &resp.Data); err != nil {
			return nil, fmt.Errorf("corrupt data for response %s: %w", resp.ID, err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
