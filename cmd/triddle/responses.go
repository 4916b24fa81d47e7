// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/triddle/models"
	"github.com/danielhkuo/triddle/report"
)

func (a *app) responsesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "responses",
		Aliases: []string{"r"},
		Short:   "Read and export the responses to your forms",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			return a.requireLogin(cmd.Context())
		},
	}
	cmd.AddCommand(
		a.responsesListCmd(),
		a.responsesShowCmd(),
		a.responsesDeleteCmd(),
		a.responsesExportCmd(),
	)
	return cmd
}

func (a *app) responsesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <form-id>",
		Short: "Show every response as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form, err := a.client.Forms().Get(ctx, args[0])
			if err != nil {
				return err
			}
			responses, err := a.client.Responses().List(ctx, form.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render(form.Title))
			if len(responses) == 0 {
				fmt.Fprintln(out, "No responses yet. Share "+linkStyle.Render(models.ShareLink(a.cfg.Origin, form.ID)))
				return nil
			}
			latest := responses[len(responses)-1].SubmittedAt
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s, latest %s",
				pluralize(len(responses), "response"), humanize.Time(latest))))
			fmt.Fprintln(out, report.Table(form, responses, time.Local))
			return nil
		},
	}
}

func (a *app) responsesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id> <response-id>",
		Short: "Show one response question by question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form, err := a.client.Forms().Get(ctx, args[0])
			if err != nil {
				return err
			}
			resp, err := a.client.Responses().Get(ctx, form.ID, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n\n", successStyle.Render(form.Title),
				dimStyle.Render("submitted "+resp.SubmittedAt.In(time.Local).Format(report.DateLayout)))
			for _, q := range form.Questions {
				answer, ok := resp.Data[q.ID]
				fmt.Fprintf(out, "%s\n  %s\n", q.Title, report.FormatValue(q, answer, ok))
			}
			return nil
		},
	}
}

func (a *app) responsesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id> <response-id>",
		Short: "Delete one response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Responses().Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Deleted"), args[1])
			return nil
		},
	}
}

func (a *app) responsesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <form-id>",
		Short: "Download all responses as CSV",
		Long:  "Download all responses as CSV. The file defaults to <title>_responses.csv; use -o - for stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if output == "-" {
				return a.client.Responses().Export(ctx, args[0], cmd.OutOrStdout())
			}

			if output == "" {
				form, err := a.client.Forms().Get(ctx, args[0])
				if err != nil {
					return err
				}
				output = report.Filename(form)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := a.client.Responses().Export(ctx, args[0], f); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			info, _ := os.Stat(output)
			size := "?"
			if info != nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", successStyle.Render("Saved"), output, size)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (- for stdout)")
	return cmd
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
