// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/triddle/session"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.alreadyLoggedIn(cmd) {
				return nil
			}

			var err error
			if email == "" {
				if email, err = a.ask("Email", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.ask("Password", true); err != nil {
					return err
				}
			}
			return a.session.Login(ctx, email, password)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func (a *app) signupCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.alreadyLoggedIn(cmd) {
				return nil
			}

			var err error
			if name == "" {
				if name, err = a.ask("Name", false); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = a.ask("Email", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.ask("Password", true); err != nil {
					return err
				}
			}
			return a.session.Signup(ctx, name, email, password)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password, at least 6 characters (prompted when omitted)")
	return cmd
}

// alreadyLoggedIn applies the /login guard: logged-in users are told so
func (a *app) alreadyLoggedIn(cmd *cobra.Command) bool {
	if err := a.session.Restore(cmd.Context()); err != nil {
		return false
	}
	if _, ok := a.session.Guard(session.PathLogin); ok {
		return false
	}
	user, _ := a.session.User()
	fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s (run `triddle logout` first)\n", user.Email)
	return true
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session here and on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.session.Restore(ctx); err != nil {
				// logout still clears the local copy
				fmt.Fprintln(a.errOut, dimStyle.Render("server unreachable; forgetting the local session only"))
			}
			return a.session.Logout(ctx)
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}
			user, _ := a.session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("member since "+humanize.Time(user.CreatedAt)))
			return nil
		},
	}
}
