package pricing

import "preorder/internal/model"

// Bundle ties a loaded schema to the indices derived from it. Built once
// when a form is loaded and treated as read-only for the rest of the
// session; it round-trips through the cache as JSON, after which Gifts
// rebuilds the id lookup.
type Bundle struct {
	Schema   *model.FormSchema    `json:"schema"`
	Index    *Index               `json:"index"`
	Sections []*model.GiftSection `json:"sections"`

	gifts *GiftIndex
}

// NewBundle tags gift sections and builds the price index for a schema
func NewBundle(schema *model.FormSchema) *Bundle {
	gifts := TagGiftSections(schema)
	return &Bundle{
		Schema:   schema,
		Index:    BuildIndex(schema, gifts),
		Sections: gifts.Sections,
		gifts:    gifts,
	}
}

// Gifts returns the gift index, rebuilding it after a cache round-trip
func (b *Bundle) Gifts() *GiftIndex {
	if b.gifts == nil {
		b.gifts = NewGiftIndex(b.Sections)
	}
	return b.gifts
}

// Evaluate computes the order state for an answer set against this form
func (b *Bundle) Evaluate(answers model.AnswerSet) model.OrderState {
	return Evaluate(answers, b.Index, b.Gifts())
}

// Total computes just the running order total
func (b *Bundle) Total(answers model.AnswerSet) int {
	return OrderTotal(answers, b.Index, b.Gifts())
}
