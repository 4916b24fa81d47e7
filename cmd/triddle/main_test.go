// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/triddle/apiclient"
	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/router"
	"github.com/danielhkuo/triddle/testutil"
)

type cli struct {
	t      *testing.T
	apiURL string
}

func newCLI(t *testing.T) (*cli, *httptest.Server) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(router.NewRouter(db, testutil.GetTestConfig()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	t.Setenv("TRIDDLE_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	return &cli{t: t, apiURL: srv.URL + router.APIPrefix}, srv
}

// run executes one triddle invocation and returns stdout
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(append([]string{"--api", c.apiURL, "--origin", "http://share.test"}, args...))
	err := root.ExecuteContext(c.t.Context())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	if err != nil {
		c.t.Fatalf("triddle %s: %v", strings.Join(args, " "), err)
	}
	return out
}

const lunchYAML = `title: Team lunch
description: Pick a day
questions:
  - type: text
    title: Your name
    required: true
  - type: radio
    title: Day
    options:
      - label: Monday
      - label: Friday
`

func TestWorkflow(t *testing.T) {
	c, _ := newCLI(t)

	// Forms need a login
	if _, err := c.run("", "forms", "list"); !errors.Is(err, errNotLoggedIn) {
		t.Fatalf("expected errNotLoggedIn, got %v", err)
	}

	c.mustRun("signup", "--name", "Ann", "--email", "ann@example.com", "--password", "secret1")
	if out := c.mustRun("whoami"); !strings.Contains(out, "ann@example.com") {
		t.Errorf("whoami: %s", out)
	}
	if out := c.mustRun("login", "-e", "ann@example.com", "-p", "secret1"); !strings.Contains(out, "Already logged in") {
		t.Errorf("login while logged in: %s", out)
	}

	file := filepath.Join(t.TempDir(), "lunch.yaml")
	os.WriteFile(file, []byte(lunchYAML), 0o644)
	out := c.mustRun("forms", "create", "-f", file)
	if !strings.Contains(out, "Created Team lunch (2 questions)") {
		t.Errorf("create: %s", out)
	}
	i := strings.Index(out, "http://share.test/form/")
	if i < 0 {
		t.Fatalf("expected share link in %s", out)
	}
	formID := strings.TrimSpace(out[i+len("http://share.test/form/"):])

	c.mustRun("forms", "question", "add", formID, "--type", "checkbox", "--title", "Pets",
		"--option", "Cat", "--option", "Dog", "--option", "Fish")
	c.mustRun("forms", "question", "move", formID, "3", "1")

	anon := apiclient.New(c.apiURL, nil)
	form, err := anon.Forms().GetPublic(t.Context(), formID)
	if err != nil {
		t.Fatal(err)
	}
	if len(form.Questions) != 3 || form.Questions[0].Title != "Pets" {
		t.Fatalf("unexpected questions %+v", form.Questions)
	}
	pets := form.Questions[0]
	if len(pets.Options) != 3 || pets.Options[2].Label != "Fish" {
		t.Errorf("unexpected options %+v", pets.Options)
	}
	if day := form.Questions[2]; day.Options[0].ID != "o1" || day.Options[1].Label != "Friday" {
		t.Errorf("unexpected yaml options %+v", day.Options)
	}

	_, err = anon.Responses().Create(t.Context(), formID, map[string]models.Answer{
		pets.ID:              models.ChoicesAnswer(pets.Options[2].ID),
		form.Questions[1].ID: models.TextAnswer("Ann, Jr."),
	})
	if err != nil {
		t.Fatal(err)
	}

	if out := c.mustRun("responses", "list", formID); !strings.Contains(out, "1 response") || !strings.Contains(out, "Fish") {
		t.Errorf("responses list: %s", out)
	}

	csvPath := filepath.Join(t.TempDir(), "out.csv")
	c.mustRun("responses", "export", formID, "-o", csvPath)
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Submission Date,Pets,Your name,Day\n") {
		t.Errorf("unexpected csv %q", data)
	}
	if !strings.Contains(string(data), `"Ann, Jr."`) {
		t.Errorf("expected quoted name in %q", data)
	}

	c.mustRun("forms", "question", "remove", formID, pets.ID)
	if out := c.mustRun("forms", "show", formID); strings.Contains(out, "Pets") {
		t.Errorf("question not removed: %s", out)
	}

	// Declining the prompt keeps the form
	if out, err := c.run("n\n", "forms", "delete", formID); err != nil || !strings.Contains(out, "Canceled") {
		t.Errorf("delete prompt: %s %v", out, err)
	}
	c.mustRun("forms", "delete", formID, "--yes")
	if out := c.mustRun("forms", "list"); !strings.Contains(out, "No forms yet") {
		t.Errorf("list after delete: %s", out)
	}

	c.mustRun("logout")
	if _, err := c.run("", "whoami"); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("expected logged out, got %v", err)
	}
}

func TestLogin_PipedPassword(t *testing.T) {
	c, _ := newCLI(t)
	c.mustRun("signup", "-n", "Ann", "-e", "ann@example.com", "-p", "secret1")
	c.mustRun("logout")

	if _, err := c.run("wrong-password\n", "login", "-e", "ann@example.com"); err == nil {
		t.Error("expected bad password to fail")
	}
	if _, err := c.run("secret1\n", "login", "-e", "ann@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	c.mustRun("whoami")
}

func TestFormIDFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"abc123", "abc123"},
		{"http://localhost:3000/form/abc123", "abc123"},
		{"https://triddle.app/form/abc123/", "abc123"},
		{"https://triddle.app/form/abc123?ref=mail", "abc123"},
	}
	for _, tt := range tests {
		if got := formIDFromRef(tt.ref); got != tt.want {
			t.Errorf("formIDFromRef(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"lunch", lunchYAML, false},
		{"unknown type", "title: x\nquestions:\n  - type: slider\n", true},
		{"not yaml", "title: [", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDraft(strings.NewReader(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			in := d.Input()
			if !d.IsNew() || in.Title != "Team lunch" || len(in.Questions) != 2 {
				t.Errorf("unexpected draft %+v", in)
			}
			if in.Questions[0].ID == "" || !in.Questions[0].Required {
				t.Errorf("unexpected first question %+v", in.Questions[0])
			}
		})
	}
}
