package model

// Threshold is one "spend Amount, get Gifts free picks" tier
type Threshold struct {
	Amount int `json:"amount" bson:"amount"`
	Gifts  int `json:"gifts" bson:"gifts"`
}

// GiftSection is the derived view of a schema item flagged as a gift section.
// Recomputed from the schema at every load; never persisted on its own.
// Selections in a gift section are free, capped by the spend-based allowance,
// and excluded from the order total.
type GiftSection struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Title      string      `json:"title" bson:"title"`
	Thresholds []Threshold `json:"thresholds" bson:"thresholds"` // Ascending by amount
}

// RulesUnavailable reports whether the section's title failed to parse any
// thresholds. The allowance is then defined to be 0 and clients must show a
// distinct "rules unavailable" state.
func (g *GiftSection) RulesUnavailable() bool {
	return len(g.Thresholds) == 0
}

// GiftState is the live, per-section slice of an OrderState
type GiftState struct {
	QuestionID       string   `json:"questionId"`
	MaxSelections    int      `json:"maxSelections"`
	Selected         []string `json:"selected"`
	Trimmed          []string `json:"trimmed,omitempty"`          // Selections dropped by the last enforcement pass
	RulesUnavailable bool     `json:"rulesUnavailable,omitempty"` // Title parsed no thresholds
}

// OrderState is what the UI needs after every answer mutation: the running
// total and the current allowance per gift section. Sections do not share an
// allowance pool.
type OrderState struct {
	Total int         `json:"total"`
	Gifts []GiftState `json:"gifts"`
}
