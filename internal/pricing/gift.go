package pricing

import "preorder/internal/model"

// MaxSelections returns how many gift picks the current total allows: the
// gift count of the highest tier whose amount is covered, or 0 when none
// is. A step function, not interpolation; crossing back below a tier
// immediately lowers the allowance. An empty tier list always yields 0.
func MaxSelections(total int, thresholds []model.Threshold) int {
	// Thresholds are sorted ascending; scan from the highest down
	for i := len(thresholds) - 1; i >= 0; i-- {
		if thresholds[i].Amount <= total {
			return thresholds[i].Gifts
		}
	}
	return 0
}

// EnforceSelections truncates an over-long selection list to the first max
// entries, preserving selection order. Within-limit lists come back
// unchanged. Called for every gift section whenever the total changes.
func EnforceSelections(selected []string, max int) []string {
	if max < 0 {
		max = 0
	}
	if len(selected) <= max {
		return selected
	}
	return selected[:max]
}

// CanSelect reports whether an option in a gift section is currently
// togglable: already-selected options stay removable at the limit, while
// new picks are blocked once the allowance is used up.
func CanSelect(selected []string, option string, max int) bool {
	for _, s := range selected {
		if s == option {
			return true
		}
	}
	return len(selected) < max
}

// Evaluate computes the full order state for the current answer set: the
// running total plus, per gift section in schema order, the allowance, the
// selections that survive enforcement and the ones that would be trimmed.
// It does not mutate the answer set; writing trimmed lists back is the
// caller's job.
func Evaluate(answers model.AnswerSet, idx *Index, gifts *GiftIndex) model.OrderState {
	total := OrderTotal(answers, idx, gifts)

	state := model.OrderState{Total: total, Gifts: make([]model.GiftState, 0, len(gifts.Sections))}
	for _, g := range gifts.Sections {
		selected := answers[FieldID(g.QuestionID)].Strings()
		max := MaxSelections(total, g.Thresholds)
		kept := EnforceSelections(selected, max)

		gs := model.GiftState{
			QuestionID:       g.QuestionID,
			MaxSelections:    max,
			Selected:         kept,
			RulesUnavailable: g.RulesUnavailable(),
		}
		if len(kept) < len(selected) {
			gs.Trimmed = selected[len(kept):]
		}
		state.Gifts = append(state.Gifts, gs)
	}
	return state
}
