// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/triddle/builder"
	"github.com/danielhkuo/triddle/models"
)

func (a *app) formsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forms",
		Aliases: []string{"form"},
		Short:   "Create and manage your forms",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			return a.requireLogin(cmd.Context())
		},
	}
	cmd.AddCommand(
		a.formsListCmd(),
		a.formsCreateCmd(),
		a.formsShowCmd(),
		a.formsDeleteCmd(),
		a.formsShareCmd(),
		a.questionCmd(),
	)
	return cmd
}

func (a *app) formsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your forms, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forms, err := a.client.Forms().List(cmd.Context())
			if err != nil {
				return err
			}
			if len(forms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No forms yet. Create one with `triddle forms create`.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(dimStyle).
				Headers("ID", "Title", "Questions", "Updated")
			for _, f := range forms {
				t.Row(f.ID, f.Title, strconv.Itoa(len(f.Questions)), humanize.Time(f.UpdatedAt))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func (a *app) formsCreateCmd() *cobra.Command {
	var file, title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a form from a YAML file, or a starter form",
		Long: `Create a form.

With -f the form is read from YAML:

  title: Team lunch
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

Question ids are assigned on create; option ids default to o1, o2, ...
Without -f a starter form with a single name question is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft *builder.Draft
			if file != "" {
				var err error
				if draft, err = loadDraft(file); err != nil {
					return err
				}
			} else {
				draft = builder.NewDraft()
			}
			if title != "" {
				draft.SetTitle(title)
			}
			if description != "" {
				draft.SetDescription(description)
			}

			result, err := draft.Commit(cmd.Context(), a.client.Forms())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d questions)\n", successStyle.Render("Created"), result.Form.Title, len(result.Form.Questions))
			fmt.Fprintln(cmd.OutOrStdout(), "Share: "+linkStyle.Render(models.ShareLink(a.cfg.Origin, result.Form.ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form definition (- for stdin)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Form title (overrides the file)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Form description (overrides the file)")
	return cmd
}

// loadDraft reads a YAML form definition into an unsaved draft
func loadDraft(path string) (*builder.Draft, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parseDraft(r)
}

func parseDraft(r io.Reader) (*builder.Draft, error) {
	var in models.FormInput
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("invalid form file: %w", err)
	}

	draft := builder.FromForm(models.Form{Title: in.Title, Description: in.Description})
	b := draft.Builder()
	for i, q := range in.Questions {
		added, err := b.Add(q.Type)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}

		q.ID = added.ID
		if q.Title == "" {
			q.Title = added.Title
		}
		if q.Placeholder == "" && !q.Type.HasOptions() {
			q.Placeholder = added.Placeholder
		}
		if q.Type.HasOptions() {
			if len(q.Options) == 0 {
				q.Options = added.Options
			}
			for j := range q.Options {
				if q.Options[j].ID == "" {
					q.Options[j].ID = fmt.Sprintf("o%d", j+1)
				}
			}
		}
		if err := b.Update(i, q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return draft, nil
}

func (a *app) formsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id>",
		Short: "Show a form and its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.client.Forms().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printForm(cmd.OutOrStdout(), form)
			fmt.Fprintln(cmd.OutOrStdout(), "\nShare: "+linkStyle.Render(models.ShareLink(a.cfg.Origin, form.ID)))
			return nil
		},
	}
}

func printForm(w io.Writer, form models.Form) {
	fmt.Fprintln(w, successStyle.Render(form.Title))
	if form.Description != "" {
		fmt.Fprintln(w, form.Description)
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("id %s · created %s · updated %s",
		form.ID, humanize.Time(form.CreatedAt), humanize.Time(form.UpdatedAt))))
	fmt.Fprintln(w)

	if len(form.Questions) == 0 {
		fmt.Fprintln(w, "No questions yet. Add one with `triddle forms question add`.")
		return
	}
	for i, q := range form.Questions {
		req := ""
		if q.Required {
			req = errorStyle.Render(" *")
		}
		fmt.Fprintf(w, "%d. %s%s %s\n", i+1, q.Title, req, dimStyle.Render("["+q.Type.Label()+", "+q.ID+"]"))
		for _, o := range q.Options {
			fmt.Fprintf(w, "     - %s %s\n", o.Label, dimStyle.Render("("+o.ID+")"))
		}
	}
}

func (a *app) formsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form and all of its responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := a.ask("Delete this form and all its responses? (y/N)", false)
				if err != nil {
					return err
				}
				if reply := strings.ToLower(strings.TrimSpace(answer)); reply != "y" && reply != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Canceled")
					return nil
				}
			}
			if err := a.client.Forms().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Deleted"), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func (a *app) formsShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <form-id>",
		Short: "Print the public link for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only link forms that exist
			form, err := a.client.Forms().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), models.ShareLink(a.cfg.Origin, form.ID))
			return nil
		},
	}
}
