// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// captureLogs points the default logger at a buffer for the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{"ok", http.StatusOK, "triddle", "level=INFO"},
		{"created", http.StatusCreated, `{"success":true}`, "level=INFO"},
		{"not found", http.StatusNotFound, "", "level=WARN"},
		{"server error", http.StatusInternalServerError, "", "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Form", "f1")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest("GET", "/api/forms/f1", nil)
			req.RemoteAddr = "10.0.0.7:5555"
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if w.Body.String() != tt.body || w.Header().Get("X-Form") != "f1" {
				t.Error("Response was altered by the logger")
			}

			line := logs.String()
			for _, want := range []string{
				tt.wantLevel,
				"method=GET",
				"path=/api/forms/f1",
				"status=" + strconv.Itoa(tt.status),
				"bytes=" + strconv.Itoa(len(tt.body)),
				"remote=10.0.0.7",
				"duration_ms=",
			} {
				if !strings.Contains(line, want) {
					t.Errorf("Expected %q in log line %q", want, line)
				}
			}
		})
	}
}

func TestWithLogging_ImplicitOK(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	if !strings.Contains(logs.String(), "status=200") {
		t.Errorf("Expected status=200 without an explicit WriteHeader, got %q", logs.String())
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", nil, "192.168.1.1:12345", "192.168.1.1"},
		{"ipv6 remote addr", nil, "[::1]:8080", "::1"},
		{"remote addr without port", nil, "192.168.1.1", "192.168.1.1"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.9"},
		{"forwarded single", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "10.0.0.1:80", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.1:80", "198.51.100.4"},
		{"forwarded beats real ip", map[string]string{
			"X-Forwarded-For": "203.0.113.9",
			"X-Real-IP":       "198.51.100.4",
		}, "10.0.0.1:80", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
