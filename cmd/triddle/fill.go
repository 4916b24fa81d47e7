// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/triddle/runner"
	"github.com/danielhkuo/triddle/tui"
)

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <form-id|share-link>",
		Short: "Fill out a shared form",
		Long:  "Answer a form one question at a time. No account is needed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			form, err := a.client.Forms().GetPublic(ctx, formIDFromRef(args[0]))
			if err != nil {
				return err
			}

			err = tui.RunFill(ctx, form, a.client.Responses())
			switch {
			case errors.Is(err, runner.ErrNoQuestions):
				return errors.New("this form has no questions yet")
			case errors.Is(err, tui.ErrAborted):
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Nothing was submitted."))
				return nil
			case err != nil:
				return fmt.Errorf("error submitting response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Response submitted"))
			return nil
		},
	}
}

// formIDFromRef accepts a bare id or a share link ending in /form/<id>
func formIDFromRef(ref string) string {
	ref = strings.TrimRight(strings.TrimSpace(ref), "/")
	if i := strings.LastIndex(ref, "/form/"); i >= 0 {
		ref = ref[i+len("/form/"):]
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return ref
}
