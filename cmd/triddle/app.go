// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/triddle/apiclient"
	"github.com/danielhkuo/triddle/cliparse"
	"github.com/danielhkuo/triddle/session"
	"github.com/danielhkuo/triddle/tui"
)

var errNotLoggedIn = errors.New("not logged in (run `triddle login`)")

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	linkStyle    = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("99"))
)

// app carries everything a command needs; built once per invocation
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	lines  *bufio.Reader

	// flags
	apiURL  string
	origin  string
	verbose bool

	cfg     cliparse.ClientConfig
	client  *apiclient.Client
	session *session.Session
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "triddle",
		Short: "Build forms, share them and collect responses from the terminal",
		Long: `triddle talks to a Triddle API server.

Log in once with "triddle login"; the session is kept in your config
directory. Anyone can fill out a shared form with "triddle fill <id>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (default $TRIDDLE_API_URL or "+cliparse.DefaultAPIURL+")")
	root.PersistentFlags().StringVar(&a.origin, "origin", "", "Origin used in share links (default $TRIDDLE_ORIGIN or "+cliparse.DefaultOrigin+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(
		a.loginCmd(),
		a.signupCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.formsCmd(),
		a.fillCmd(),
		a.responsesCmd(),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level})))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	cfg, err := cliparse.LoadClientConfig()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.origin != "" {
		cfg.Origin = a.origin
	}
	a.cfg = cfg

	a.client = apiclient.New(cfg.APIURL, nil)
	a.session = session.New(
		a.client,
		session.NewFileStore(cfg.SessionFile),
		session.NotifierFunc(a.notify),
		session.NavigatorFunc(func(path string) {
			slog.Debug("navigate", "path", path)
		}),
	)
	slog.Debug("client ready", "api", cfg.APIURL, "session_file", cfg.SessionFile)
	return nil
}

func (a *app) notify(n session.Notice) {
	title := successStyle.Render(n.Title)
	if n.Destructive {
		title = errorStyle.Render(n.Title)
	}
	fmt.Fprintf(a.errOut, "%s %s\n", title, n.Description)
}

// requireLogin restores the saved session and fails when there is none
func (a *app) requireLogin(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		slog.Warn("session check failed", "error", err)
	}
	if _, ok := a.session.Guard(session.PathDashboard); !ok {
		return errNotLoggedIn
	}
	return nil
}

// ask reads one answer: a prompt on a terminal, a line when piped
func (a *app) ask(label string, secret bool) (string, error) {
	if f, ok := a.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tui.Prompt(a.in, a.errOut, label, secret)
	}

	if a.lines == nil {
		a.lines = bufio.NewReader(a.in)
	}
	line, err := a.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("no %s given", strings.ToLower(label))
	}
	return strings.TrimRight(line, "\r\n"), nil
}
