// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Answer is a single stored answer: a string for every question type except
// checkbox, which stores the selected option ids in selection order.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

// TextAnswer builds a scalar answer
func TextAnswer(v string) Answer {
	return Answer{Value: v}
}

// ChoicesAnswer builds a multi-select answer. The slice is copied.
func ChoicesAnswer(ids ...string) Answer {
	return Answer{Values: append([]string{}, ids...), Multi: true}
}

// IsEmpty reports whether the answer counts as unanswered: the empty string
// or an empty selection. Whitespace is an answer.
func (a Answer) IsEmpty() bool {
	if a.Multi {
		return len(a.Values) == 0
	}
	return a.Value == ""
}

// Equal compares two answers including selection order
func (a Answer) Equal(b Answer) bool {
	if a.Multi != b.Multi {
		return false
	}
	if !a.Multi {
		return a.Value == b.Value
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			return false
		}
	}
	return true
}

func (a Answer) String() string {
	if a.Multi {
		return fmt.Sprint(a.Values)
	}
	return a.Value
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("answer must be a string or a list of strings: %w", err)
		}
		*a = Answer{Values: values, Multi: true}
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	*a = Answer{Value: value}
	return nil
}
