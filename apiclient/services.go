// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/danielhkuo/triddle/models"
)

// AuthService covers /auth
type AuthService struct{ c *Client }

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := s.c.Do(ctx, http.MethodPost, "/auth/register", req, &resp)
	return resp, err
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := s.c.Do(ctx, http.MethodPost, "/auth/login", req, &resp)
	return resp, err
}

// Me returns the user behind the current token
func (s *AuthService) Me(ctx context.Context) (models.User, error) {
	var resp models.AuthResponse
	if err := s.c.Do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return models.User{}, err
	}
	if resp.User == nil {
		return models.User{}, &APIError{StatusCode: http.StatusOK, Message: DefaultErrorMessage}
	}
	return *resp.User, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// FormsService covers /forms. Create and Update make it a builder.Saver.
type FormsService struct{ c *Client }

func (s *FormsService) Create(ctx context.Context, in models.FormInput) (models.Form, error) {
	var resp models.FormEnvelope
	err := s.c.Do(ctx, http.MethodPost, "/forms", in, &resp)
	return resp.Data, err
}

func (s *FormsService) List(ctx context.Context) ([]models.Form, error) {
	var resp models.FormListEnvelope
	err := s.c.Do(ctx, http.MethodGet, "/forms", nil, &resp)
	return resp.Data, err
}

func (s *FormsService) Get(ctx context.Context, id string) (models.Form, error) {
	var resp models.FormEnvelope
	err := s.c.Do(ctx, http.MethodGet, "/forms/"+url.PathEscape(id), nil, &resp)
	return resp.Data, err
}

func (s *FormsService) Update(ctx context.Context, id string, in models.FormInput) (models.Form, error) {
	var resp models.FormEnvelope
	err := s.c.Do(ctx, http.MethodPut, "/forms/"+url.PathEscape(id), in, &resp)
	return resp.Data, err
}

func (s *FormsService) Delete(ctx context.Context, id string) error {
	return s.c.Do(ctx, http.MethodDelete, "/forms/"+url.PathEscape(id), nil, nil)
}

// GetPublic fetches a form for filling out; no login needed
func (s *FormsService) GetPublic(ctx context.Context, id string) (models.Form, error) {
	var resp models.FormEnvelope
	err := s.c.Do(ctx, http.MethodGet, "/forms/public/"+url.PathEscape(id), nil, &resp)
	return resp.Data, err
}

// ResponsesService covers /responses
type ResponsesService struct{ c *Client }

// Submit stores one set of answers. The signature matches runner.Submitter.
func (s *ResponsesService) Submit(ctx context.Context, formID string, answers map[string]models.Answer) error {
	_, err := s.Create(ctx, formID, answers)
	return err
}

// Create is Submit that also returns the stored response
func (s *ResponsesService) Create(ctx context.Context, formID string, answers map[string]models.Answer) (models.FormResponse, error) {
	var resp models.ResponseEnvelope
	err := s.c.Do(ctx, http.MethodPost, "/responses", models.SubmitResponseRequest{
		FormID: formID,
		Data:   answers,
	}, &resp)
	return resp.Data, err
}

func (s *ResponsesService) List(ctx context.Context, formID string) ([]models.FormResponse, error) {
	var resp models.ResponseListEnvelope
	err := s.c.Do(ctx, http.MethodGet, "/responses/"+url.PathEscape(formID), nil, &resp)
	return resp.Data, err
}

func (s *ResponsesService) Get(ctx context.Context, formID, responseID string) (models.FormResponse, error) {
	var resp models.ResponseEnvelope
	err := s.c.Do(ctx, http.MethodGet, "/responses/"+url.PathEscape(formID)+"/"+url.PathEscape(responseID), nil, &resp)
	return resp.Data, err
}

func (s *ResponsesService) Delete(ctx context.Context, formID, responseID string) error {
	return s.c.Do(ctx, http.MethodDelete, "/responses/"+url.PathEscape(formID)+"/"+url.PathEscape(responseID), nil, nil)
}

// Export writes the server-rendered CSV to w
func (s *ResponsesService) Export(ctx context.Context, formID string, w io.Writer) error {
	return s.c.stream(ctx, http.MethodGet, "/responses/"+url.PathEscape(formID)+"/export", w)
}
