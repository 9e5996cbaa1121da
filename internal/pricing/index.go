package pricing

import (
	"regexp"
	"strings"

	"preorder/internal/model"
)

// GiftMarker is the title prefix that flags an item as a gift section.
// A first-class schema field would be nicer, but the forms provider only
// gives us text, so tagging stays a title convention.
const GiftMarker = "【贈品】"

// Answer fields are keyed question_<id>; matrix cells append a row suffix
// which is stripped before lookup.
var fieldIDRe = regexp.MustCompile(`^question_([^_]+)(?:_.*)?$`)

// FieldID returns the answer-set key for a question
func FieldID(questionID string) string {
	return "question_" + questionID
}

// MatrixFieldID returns the answer-set key for one matrix cell
func MatrixFieldID(questionID, row string) string {
	return "question_" + questionID + "_" + row
}

// ParseFieldID extracts the question id from a field identifier. Malformed
// identifiers return ok=false and are ignored by the aggregator.
func ParseFieldID(fieldID string) (string, bool) {
	m := fieldIDRe.FindStringSubmatch(fieldID)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// GiftIndex holds the gift sections tagged from a schema, in schema order,
// with id lookup. Built once per form load; read-only afterwards.
type GiftIndex struct {
	Sections []*model.GiftSection `json:"sections"`

	byID map[string]*model.GiftSection
}

// NewGiftIndex builds the id lookup over an ordered section list. Used when
// rehydrating a cached form bundle.
func NewGiftIndex(sections []*model.GiftSection) *GiftIndex {
	gi := &GiftIndex{Sections: sections, byID: make(map[string]*model.GiftSection, len(sections))}
	for _, g := range sections {
		gi.byID[g.QuestionID] = g
	}
	return gi
}

// TagGiftSections scans a schema for gift-marked items and parses their
// thresholds. A section whose title parses no thresholds is still tagged
// (so its fields stay excluded from the total) with an empty tier list,
// which clients surface as "rules unavailable".
func TagGiftSections(schema *model.FormSchema) *GiftIndex {
	var sections []*model.GiftSection
	for i := range schema.Items {
		item := &schema.Items[i]
		if !strings.HasPrefix(item.Title, GiftMarker) {
			continue
		}
		qid := item.PrimaryQuestionID()
		if qid == "" {
			continue
		}
		sections = append(sections, &model.GiftSection{
			QuestionID: qid,
			Title:      item.Title,
			Thresholds: ParseThresholds(item.Title),
		})
	}
	return NewGiftIndex(sections)
}

// Has reports whether a question id belongs to a gift section
func (gi *GiftIndex) Has(questionID string) bool {
	_, ok := gi.byID[questionID]
	return ok
}

// Lookup returns the gift section for a question id, or nil
func (gi *GiftIndex) Lookup(questionID string) *model.GiftSection {
	return gi.byID[questionID]
}

// Index holds the prices parsed from a schema's embedded text: per-question
// and per-option-label. Built once per form load; read-only afterwards.
type Index struct {
	// Question maps question id to the price parsed from the owning item's
	// title. Gift-section ids are excluded by construction, even when their
	// title happens to match the price pattern.
	Question map[string]int `json:"question"`
	// Option maps an option's own label to its price, for variant pricing
	// that overrides the per-question price.
	Option map[string]int `json:"option"`
	// Known holds every question id in the schema, so answers referencing
	// ids the schema never defined are ignored rather than priced.
	Known map[string]bool `json:"known"`
}

// BuildIndex walks a schema once and collects all embedded prices
func BuildIndex(schema *model.FormSchema, gifts *GiftIndex) *Index {
	idx := &Index{
		Question: make(map[string]int),
		Option:   make(map[string]int),
		Known:    make(map[string]bool),
	}
	schema.EachQuestion(func(item *model.Item, q *model.Question) {
		idx.Known[q.ID] = true
		if gifts.Has(q.ID) {
			return
		}
		title := q.Title
		if title == "" {
			title = item.Title
		}
		if p, ok := ExtractPrice(title); ok {
			idx.Question[q.ID] = p
		}
		for _, opt := range q.Options {
			if p, ok := ExtractPrice(opt); ok {
				idx.Option[opt] = p
			}
		}
	})
	return idx
}

// valuePrice applies the per-value pricing rule: the value's own label may
// carry a variant price, else the question-level price, else zero. Bare
// checkbox booleans never hit the option index.
func (idx *Index) valuePrice(questionID, value string) int {
	if value == "" || value == "false" {
		return 0
	}
	if value != "true" {
		if p, ok := idx.Option[value]; ok {
			return p
		}
	}
	return idx.Question[questionID]
}
