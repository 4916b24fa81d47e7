// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/triddle/builder"
	"github.com/danielhkuo/triddle/models"
)

func (a *app) questionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "question",
		Aliases: []string{"q"},
		Short:   "Edit the questions of a saved form",
	}
	cmd.AddCommand(a.questionAddCmd(), a.questionRemoveCmd(), a.questionMoveCmd())
	return cmd
}

// edit loads a form into a draft, applies fn and saves the whole form back
func (a *app) edit(ctx context.Context, formID string, fn func(d *builder.Draft) error) (models.Form, error) {
	form, err := a.client.Forms().Get(ctx, formID)
	if err != nil {
		return models.Form{}, err
	}

	draft := builder.FromForm(form)
	if err := fn(draft); err != nil {
		return models.Form{}, err
	}
	if !draft.Dirty() {
		return form, nil
	}

	result, err := draft.Commit(ctx, a.client.Forms())
	if err != nil {
		return models.Form{}, err
	}
	return result.Form, nil
}

func typeNames() string {
	names := make([]string, len(models.QuestionTypes))
	for i, t := range models.QuestionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func (a *app) questionAddCmd() *cobra.Command {
	var (
		qType       string
		title       string
		placeholder string
		required    bool
		options     []string
	)

	cmd := &cobra.Command{
		Use:   "add <form-id>",
		Short: "Append a question",
		Example: `  triddle forms question add abc123 --type radio --title "Favourite day" \
    --option Monday --option Friday --required`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added models.Question
			form, err := a.edit(cmd.Context(), args[0], func(d *builder.Draft) error {
				b := d.Builder()
				q, err := b.Add(models.QuestionType(qType))
				if err != nil {
					return err
				}
				i := b.Len() - 1

				if q.Type.HasOptions() && len(options) > 0 {
					if err := setOptions(b, i, options); err != nil {
						return err
					}
				}

				if q, err = b.Question(i); err != nil {
					return err
				}
				if title != "" {
					q.Title = title
				}
				if placeholder != "" {
					q.Placeholder = placeholder
				}
				q.Required = required
				added = q
				return b.Update(i, q)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q as question %d of %s\n",
				successStyle.Render("Added"), added.Title, len(form.Questions), form.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&qType, "type", string(models.TypeText), "Question type: "+typeNames())
	cmd.Flags().StringVar(&title, "title", "", "Question text")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Hint shown in empty inputs")
	cmd.Flags().BoolVar(&required, "required", false, "Respondents must answer")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Choice label for radio/checkbox (repeatable)")
	return cmd
}

// setOptions replaces the starter options of question i with labels
func setOptions(b *builder.Builder, i int, labels []string) error {
	q, err := b.Question(i)
	if err != nil {
		return err
	}

	for j, label := range labels {
		if j < len(q.Options) {
			if err := b.UpdateOption(i, q.Options[j].ID, label); err != nil {
				return err
			}
			continue
		}
		o, err := b.AddOption(i)
		if err != nil {
			return err
		}
		if err := b.UpdateOption(i, o.ID, label); err != nil {
			return err
		}
	}

	// Drop starter options that weren't relabelled
	for _, o := range q.Options[min(len(labels), len(q.Options)):] {
		if err := b.RemoveOption(i, o.ID); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) questionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <form-id> <question-id|position>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed models.Question
			form, err := a.edit(cmd.Context(), args[0], func(d *builder.Draft) error {
				i, err := questionIndex(d.Builder(), args[1])
				if err != nil {
					return err
				}
				removed, _ = d.Builder().Question(i)
				return d.Builder().Remove(i)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q; %s now has %d questions\n",
				successStyle.Render("Removed"), removed.Title, form.Title, len(form.Questions))
			return nil
		},
	}
}

func (a *app) questionMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <form-id> <question-id|position> <to-position>",
		Short: "Move a question to another position (1-based)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("position must be a number: %s", args[2])
			}

			form, err := a.edit(cmd.Context(), args[0], func(d *builder.Draft) error {
				from, err := questionIndex(d.Builder(), args[1])
				if err != nil {
					return err
				}
				return d.Builder().Reorder(from, to-1)
			})
			if err != nil {
				return err
			}
			printForm(cmd.OutOrStdout(), form)
			return nil
		},
	}
}

// questionIndex resolves a question id or a 1-based position
func questionIndex(b *builder.Builder, ref string) (int, error) {
	for i, q := range b.Questions() {
		if q.ID == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= b.Len() {
		return n - 1, nil
	}
	return 0, fmt.Errorf("no question %q", ref)
}
