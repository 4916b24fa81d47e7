// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/triddle/apiclient"
	"github.com/danielhkuo/triddle/models"
)

// Navigation targets
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathDashboard = "/dashboard"
	PathFormFill  = "/form/"
)

// Notice is a user-facing message such as "Login successful"
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Session tracks who is logged in. It is also the client's TokenSource, so
// every request made through the client carries the current token.
type Session struct {
	client *apiclient.Client
	store  TokenStore
	notify Notifier
	nav    Navigator

	mu    sync.RWMutex
	token string
	user  *models.User
}

// New wires a session to client. notify and nav may be nil.
func New(client *apiclient.Client, store TokenStore, notify Notifier, nav Navigator) *Session {
	if notify == nil {
		notify = NotifierFunc(func(Notice) {})
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	s := &Session{client: client, store: store, notify: notify, nav: nav}
	client.SetTokenSource(s)
	return s
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

// Login exchanges credentials for a token. On failure nothing is stored and
// the session is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Auth().Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err == nil && (!resp.Success || resp.Token == "" || resp.User == nil) {
		err = errors.New(fallback(resp.Message, "Login failed"))
	}
	if err != nil {
		s.notify.Notify(Notice{Title: "Login failed", Description: describe(err, "An error occurred during login"), Destructive: true})
		return err
	}

	if err := s.adopt(resp); err != nil {
		return err
	}
	s.notify.Notify(Notice{Title: "Login successful", Description: fmt.Sprintf("Welcome back, %s!", resp.User.Name)})
	s.nav.Navigate(PathDashboard)
	return nil
}

// Signup registers a new account and logs straight in
func (s *Session) Signup(ctx context.Context, name, email, password string) error {
	resp, err := s.client.Auth().Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	if err == nil && (!resp.Success || resp.Token == "" || resp.User == nil) {
		err = errors.New(fallback(resp.Message, "Signup failed"))
	}
	if err != nil {
		s.notify.Notify(Notice{Title: "Signup failed", Description: describe(err, "An error occurred during signup"), Destructive: true})
		return err
	}

	if err := s.adopt(resp); err != nil {
		return err
	}
	s.notify.Notify(Notice{Title: "Account created", Description: "Your account has been created successfully!"})
	s.nav.Navigate(PathDashboard)
	return nil
}

func (s *Session) adopt(resp models.AuthResponse) error {
	if err := s.store.Save(Stored{Token: resp.Token, User: resp.User}); err != nil {
		s.notify.Notify(Notice{Title: "Login failed", Description: "Could not save your session", Destructive: true})
		return err
	}

	user := *resp.User
	s.mu.Lock()
	s.token = resp.Token
	s.user = &user
	s.mu.Unlock()

	slog.Debug("session started", "user_id", user.ID)
	return nil
}

// Logout revokes the token on the server when it can and always forgets it
// locally.
func (s *Session) Logout(ctx context.Context) error {
	if s.Token() != "" {
		if err := s.client.Auth().Logout(ctx); err != nil {
			slog.Warn("server logout failed", "error", err)
		}
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	err := s.store.Clear()
	s.nav.Navigate(PathLogin)
	s.notify.Notify(Notice{Title: "Logged out", Description: "You have been logged out successfully."})
	return err
}

// Restore picks up a persisted login. A token the server rejects is thrown
// away; any other failure keeps it and the stored user for next time.
func (s *Session) Restore(ctx context.Context) error {
	stored, err := s.store.Load()
	if err != nil {
		return err
	}
	if stored.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = stored.Token
	s.mu.Unlock()

	user, err := s.client.Auth().Me(ctx)
	if apiclient.IsUnauthorized(err) {
		slog.Debug("stored token rejected")
		s.mu.Lock()
		s.token = ""
		s.user = nil
		s.mu.Unlock()
		return s.store.Clear()
	}
	if err != nil {
		s.mu.Lock()
		s.user = stored.User
		s.mu.Unlock()
		return fmt.Errorf("could not verify session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	if stored.User == nil || *stored.User != user {
		return s.store.Save(Stored{Token: stored.Token, User: &user})
	}
	return nil
}

// IsPublic reports whether path can be viewed logged out
func IsPublic(path string) bool {
	switch path {
	case PathHome, PathLogin, PathSignup:
		return true
	}
	return strings.HasPrefix(path, PathFormFill)
}

// Guard decides where a visit to path should go instead. ok is true when the
// visit may proceed.
func (s *Session) Guard(path string) (redirect string, ok bool) {
	authed := s.Authenticated()
	if !authed && !IsPublic(path) {
		return PathLogin, false
	}
	if authed && (path == PathLogin || path == PathSignup) {
		return PathDashboard, false
	}
	return "", true
}

func describe(err error, otherwise string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback(err.Error(), otherwise)
}

func fallback(s, otherwise string) string {
	if s == "" {
		return otherwise
	}
	return s
}
