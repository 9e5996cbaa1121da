package model

// QuestionKind defines the input type of a question
type QuestionKind string

const (
	QuestionSingleChoice QuestionKind = "SINGLE_CHOICE" // Radio group
	QuestionMultiChoice  QuestionKind = "MULTI_CHOICE"  // Checkbox group
	QuestionDropdown     QuestionKind = "DROPDOWN"
	QuestionText         QuestionKind = "TEXT"   // Free text
	QuestionScale        QuestionKind = "SCALE"  // Linear scale
	QuestionDate         QuestionKind = "DATE"
	QuestionTime         QuestionKind = "TIME"
	QuestionFileUpload   QuestionKind = "FILE_UPLOAD"
)

// ItemKind discriminates the three schema item variants
type ItemKind string

const (
	ItemQuestion  ItemKind = "QUESTION"
	ItemGroup     ItemKind = "GROUP"     // Matrix-style set of sub-questions
	ItemPageBreak ItemKind = "PAGE_BREAK" // Layout only, carries no answer data
)

// Question is a single answerable field within a form
type Question struct {
	ID      string       `json:"id" bson:"id"`
	Title   string       `json:"title" bson:"title"`
	Kind    QuestionKind `json:"kind" bson:"kind"`
	Options []string     `json:"options,omitempty" bson:"options,omitempty"` // Choice kinds only
	Rows    []string     `json:"rows,omitempty" bson:"rows,omitempty"`       // Matrix row labels (inside groups)
}

// Item is one entry in a form's ordered item list. Exactly one of
// Question/Questions is populated depending on Kind; page breaks carry neither.
type Item struct {
	Kind      ItemKind   `json:"kind" bson:"kind"`
	Title     string     `json:"title,omitempty" bson:"title,omitempty"`
	Question  *Question  `json:"question,omitempty" bson:"question,omitempty"`
	Questions []Question `json:"questions,omitempty" bson:"questions,omitempty"`
}

// FormSchema is the ordered item list fetched from the forms provider.
// Immutable once loaded; question IDs are unique across the whole schema,
// including inside groups.
type FormSchema struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Title string `json:"title" bson:"title"`
	Items []Item `json:"items" bson:"items"`
}

// PrimaryQuestionID returns the id of an item's primary question: the question
// itself, or the first sub-question of a group. Empty for page breaks.
func (it *Item) PrimaryQuestionID() string {
	switch it.Kind {
	case ItemQuestion:
		if it.Question != nil {
			return it.Question.ID
		}
	case ItemGroup:
		if len(it.Questions) > 0 {
			return it.Questions[0].ID
		}
	}
	return ""
}

// EachQuestion calls fn for every question in the schema, in item order,
// descending into groups.
func (s *FormSchema) EachQuestion(fn func(item *Item, q *Question)) {
	for i := range s.Items {
		item := &s.Items[i]
		switch item.Kind {
		case ItemQuestion:
			if item.Question != nil {
				fn(item, item.Question)
			}
		case ItemGroup:
			for j := range item.Questions {
				fn(item, &item.Questions[j])
			}
		}
	}
}
