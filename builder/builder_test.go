// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package builder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/triddle/models"
)

func seeded(t *testing.T) *Builder {
	t.Helper()
	b := New(nil)
	for _, typ := range []models.QuestionType{models.TypeText, models.TypeRadio, models.TypeDate, models.TypeCheckbox} {
		if _, err := b.Add(typ); err != nil {
			t.Fatalf("Add(%s): %v", typ, err)
		}
	}
	return b
}

func TestAdd_Defaults(t *testing.T) {
	b := New(nil)

	q, err := b.Add(models.TypeText)
	if err != nil {
		t.Fatal(err)
	}
	if q.ID == "" || q.Title != "Question 1" || q.Placeholder != DefaultPlaceholder || q.Required {
		t.Errorf("unexpected defaults: %+v", q)
	}
	if len(q.Options) != 0 {
		t.Error("text question should have no options")
	}

	r, err := b.Add(models.TypeRadio)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Question 2" {
		t.Errorf("expected Question 2, got %s", r.Title)
	}
	want := []models.Option{{ID: "o1", Label: "Option 1"}, {ID: "o2", Label: "Option 2"}}
	if !reflect.DeepEqual(r.Options, want) {
		t.Errorf("expected default options %v, got %v", want, r.Options)
	}
	if r.ID == q.ID {
		t.Error("question ids must be unique")
	}

	if _, err := b.Add("slider"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestAddThenRemove_Identity(t *testing.T) {
	b := seeded(t)
	before := b.Questions()

	if _, err := b.Add(models.TypePhone); err != nil {
		t.Fatal(err)
	}
	if err := b.Remove(b.Len() - 1); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, b.Questions()) {
		t.Errorf("add then remove changed the list:\nbefore %+v\nafter  %+v", before, b.Questions())
	}
}

func TestReorder_Identity(t *testing.T) {
	b := seeded(t)
	before := b.Questions()

	pairs := [][2]int{{0, 3}, {3, 0}, {1, 2}, {2, 2}, {0, 1}}
	for _, p := range pairs {
		i, j := p[0], p[1]
		if err := b.Reorder(i, j); err != nil {
			t.Fatalf("Reorder(%d,%d): %v", i, j, err)
		}
		if err := b.Reorder(j, i); err != nil {
			t.Fatalf("Reorder(%d,%d): %v", j, i, err)
		}
		if !reflect.DeepEqual(before, b.Questions()) {
			t.Errorf("reorder(%d,%d) then reorder(%d,%d) is not the identity", i, j, j, i)
		}
	}
}

func TestReorder_Moves(t *testing.T) {
	b := seeded(t)
	ids := func() []string {
		var out []string
		for _, q := range b.Questions() {
			out = append(out, string(q.Type))
		}
		return out
	}

	if err := b.Reorder(0, 2); err != nil {
		t.Fatal(err)
	}
	want := []string{"radio", "date", "text", "checkbox"}
	if got := ids(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if err := b.Reorder(0, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemove_ShiftsDown(t *testing.T) {
	b := seeded(t)
	third, _ := b.Question(2)

	if err := b.Remove(1); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Question(1)
	if got.ID != third.ID {
		t.Errorf("expected question %s to shift to index 1, got %s", third.ID, got.ID)
	}
	if err := b.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	b := seeded(t)
	q, _ := b.Question(0)

	q.Title = "Your name"
	q.Required = true
	if err := b.Update(0, q); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Question(0)
	if got.Title != "Your name" || !got.Required {
		t.Errorf("update not applied: %+v", got)
	}

	changed := got
	changed.Type = models.TypeEmail
	if err := b.Update(0, changed); !errors.Is(err, ErrTypeChange) {
		t.Errorf("expected ErrTypeChange, got %v", err)
	}

	radio, _ := b.Question(1)
	radio.Options = nil
	if err := b.Update(1, radio); err == nil {
		t.Error("expected validation error for radio without options")
	}

	if err := b.Update(7, q); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestOptionEditing(t *testing.T) {
	b := seeded(t)

	if err := b.RemoveOption(1, "o1"); err != nil {
		t.Fatal(err)
	}
	opt, err := b.AddOption(1)
	if err != nil {
		t.Fatal(err)
	}
	if opt.ID != "o1" {
		t.Errorf("expected the freed id o1 to be reused, got %s", opt.ID)
	}
	if err := b.UpdateOption(1, "o2", "Blue"); err != nil {
		t.Fatal(err)
	}

	q, _ := b.Question(1)
	if len(q.Options) != 2 || q.Options[0].Label != "Blue" || q.Options[1].ID != "o1" {
		t.Errorf("unexpected options: %+v", q.Options)
	}

	if err := b.RemoveOption(1, "o2"); err != nil {
		t.Fatal(err)
	}
	if err := b.RemoveOption(1, "o1"); !errors.Is(err, ErrLastOption) {
		t.Errorf("expected ErrLastOption, got %v", err)
	}
	if err := b.UpdateOption(1, "zz", "x"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	if _, err := b.AddOption(0); !errors.Is(err, ErrNotChoice) {
		t.Errorf("expected ErrNotChoice, got %v", err)
	}
}

func TestOnChange(t *testing.T) {
	b := New(nil)
	var calls int
	var last []models.Question
	b.OnChange(func(qs []models.Question) {
		calls++
		last = qs
	})

	b.Add(models.TypeText)
	b.Add(models.TypeRadio)
	b.Remove(5) // fails, no notification

	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
	if len(last) != 2 {
		t.Fatalf("expected a 2 question snapshot, got %d", len(last))
	}

	// Snapshot is a copy
	last[1].Options[0].Label = "mutated"
	q, _ := b.Question(1)
	if q.Options[0].Label == "mutated" {
		t.Error("observer snapshot aliases builder state")
	}
}
