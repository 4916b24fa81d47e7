// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danielhkuo/triddle/models"
)

// Placeholder shown for unanswered questions
const Placeholder = "—"

// DateLayout is the submission date format used in tables and CSV
const DateLayout = "2006-01-02 15:04:05"

// FormatValue renders one answer for display. Choice answers are shown by
// label, falling back to the raw id when the option no longer exists.
func FormatValue(q models.Question, a models.Answer, ok bool) string {
	if !ok || a.IsEmpty() {
		return Placeholder
	}

	switch q.Type {
	case models.TypeRadio:
		return optionLabel(q, a.Value)
	case models.TypeCheckbox:
		labels := make([]string, len(a.Values))
		for i, id := range a.Values {
			labels[i] = optionLabel(q, id)
		}
		return strings.Join(labels, ", ")
	}

	if a.Multi {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}

func optionLabel(q models.Question, id string) string {
	if o, ok := q.Option(id); ok {
		return o.Label
	}
	return id
}

// Header returns the column titles: the submission date then one column per
// question in form order
func Header(form models.Form) []string {
	header := make([]string, 0, len(form.Questions)+1)
	header = append(header, "Submission Date")
	for _, q := range form.Questions {
		header = append(header, q.Title)
	}
	return header
}

// Row formats one response in Header order
func Row(form models.Form, resp models.FormResponse, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	row := make([]string, 0, len(form.Questions)+1)
	row = append(row, resp.SubmittedAt.In(loc).Format(DateLayout))
	for _, q := range form.Questions {
		a, ok := resp.Data[q.ID]
		row = append(row, FormatValue(q, a, ok))
	}
	return row
}

// WriteCSV writes the header and one record per response. Fields containing
// commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, form models.Form, responses []models.FormResponse, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(form)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, resp := range responses {
		if err := cw.Write(Row(form, resp, loc)); err != nil {
			return fmt.Errorf("failed to write response %s: %w", resp.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename is the suggested download name for a form's export
func Filename(form models.Form) string {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = "form"
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
	return title + "_responses.csv"
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Table renders the responses as a bordered terminal table
func Table(form models.Form, responses []models.FormResponse, loc *time.Location) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Header(form)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, resp := range responses {
		t.Row(Row(form, resp, loc)...)
	}
	return t.String()
}
