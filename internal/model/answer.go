package model

import "encoding/json"

// Value is a single respondent answer: either one string or an ordered list
// of strings (multi-select). It marshals to a bare JSON string or array so
// the wire format matches what form clients naturally send.
type Value struct {
	Text  string   `bson:"text,omitempty"`
	List  []string `bson:"list,omitempty"`
	Multi bool     `bson:"multi,omitempty"`
}

// NewValue wraps a single-string answer
func NewValue(s string) Value {
	return Value{Text: s}
}

// NewListValue wraps an ordered multi-select answer
func NewListValue(items []string) Value {
	return Value{List: items, Multi: true}
}

// Strings returns the answer as a slice: the list itself, or the single
// value as a one-element slice. Empty single values yield an empty slice.
func (v Value) Strings() []string {
	if v.Multi {
		return v.List
	}
	if v.Text == "" {
		return nil
	}
	return []string{v.Text}
}

// IsEmpty reports whether the value carries no answer at all
func (v Value) IsEmpty() bool {
	if v.Multi {
		return len(v.List) == 0
	}
	return v.Text == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{Text: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = Value{List: list, Multi: true}
	return nil
}

// AnswerSet maps field identifiers (question_<id>, with an optional matrix
// row suffix) to the respondent's current values. Unanswered fields are
// simply absent.
type AnswerSet map[string]Value
