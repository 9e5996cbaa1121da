package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preorder/internal/model"
)

func TestMaxSelections(t *testing.T) {
	tiers := []model.Threshold{{Amount: 2500, Gifts: 1}, {Amount: 5000, Gifts: 2}}

	tests := []struct {
		name       string
		total      int
		thresholds []model.Threshold
		want       int
	}{
		{name: "zero total", total: 0, thresholds: tiers, want: 0},
		{name: "below first tier", total: 2499, thresholds: tiers, want: 0},
		{name: "exactly first tier", total: 2500, thresholds: tiers, want: 1},
		{name: "between tiers", total: 4999, thresholds: tiers, want: 1},
		{name: "above second tier", total: 6000, thresholds: tiers, want: 2},
		{name: "empty tier list", total: 99999, thresholds: nil, want: 0},
		{name: "negative total", total: -1, thresholds: tiers, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxSelections(tt.total, tt.thresholds))
		})
	}
}

func TestEnforceSelections(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		max      int
		want     []string
	}{
		{name: "within limit unchanged", selected: []string{"A", "B"}, max: 3, want: []string{"A", "B"}},
		{name: "at limit unchanged", selected: []string{"A", "B"}, max: 2, want: []string{"A", "B"}},
		{name: "over limit front-truncated", selected: []string{"A", "B", "C"}, max: 1, want: []string{"A"}},
		{name: "limit zero clears all", selected: []string{"A", "B"}, max: 0, want: []string{}},
		{name: "negative limit treated as zero", selected: []string{"A"}, max: -1, want: []string{}},
		{name: "empty selection stays empty", selected: nil, max: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnforceSelections(tt.selected, tt.max)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestCanSelect(t *testing.T) {
	selected := []string{"小卡", "貼紙"}

	// At the limit: new picks blocked, existing ones stay togglable
	assert.False(t, CanSelect(selected, "鑰匙圈", 2))
	assert.True(t, CanSelect(selected, "小卡", 2))

	// Below the limit: new picks allowed
	assert.True(t, CanSelect(selected, "鑰匙圈", 3))

	// Zero allowance blocks everything not already selected
	assert.False(t, CanSelect(nil, "小卡", 0))
}

func TestEvaluate(t *testing.T) {
	schema := testSchema()
	gifts := TagGiftSections(schema)
	idx := BuildIndex(schema, gifts)

	answers := model.AnswerSet{
		"question_100": model.NewValue("經典項鍊 $1000"),
		"question_900": model.NewListValue([]string{"小卡", "貼紙", "鑰匙圈"}),
	}

	state := Evaluate(answers, idx, gifts)
	assert.Equal(t, 1000, state.Total)
	require.Len(t, state.Gifts, 1)

	g := state.Gifts[0]
	assert.Equal(t, "900", g.QuestionID)
	assert.Equal(t, 1, g.MaxSelections)
	assert.Equal(t, []string{"小卡"}, g.Selected)
	assert.Equal(t, []string{"貼紙", "鑰匙圈"}, g.Trimmed)
	assert.False(t, g.RulesUnavailable)
}

func TestEvaluate_RulesUnavailable(t *testing.T) {
	schema := &model.FormSchema{Items: []model.Item{
		{
			Kind:     model.ItemQuestion,
			Title:    "項鍊 $1000",
			Question: &model.Question{ID: "1", Kind: model.QuestionSingleChoice, Options: []string{"項鍊 $1000"}},
		},
		{
			Kind:     model.ItemQuestion,
			Title:    "【贈品】贈品規則待定",
			Question: &model.Question{ID: "2", Kind: model.QuestionMultiChoice, Options: []string{"贈品A"}},
		},
	}}
	gifts := TagGiftSections(schema)
	idx := BuildIndex(schema, gifts)

	answers := model.AnswerSet{
		"question_1": model.NewValue("項鍊 $1000"),
		"question_2": model.NewListValue([]string{"贈品A"}),
	}

	state := Evaluate(answers, idx, gifts)
	require.Len(t, state.Gifts, 1)

	// Unparsable rules: allowance is zero and the state says so explicitly,
	// never "spend $0 to qualify"
	g := state.Gifts[0]
	assert.True(t, g.RulesUnavailable)
	assert.Equal(t, 0, g.MaxSelections)
	assert.Empty(t, g.Selected)
	assert.Equal(t, []string{"贈品A"}, g.Trimmed)
}

// The end-to-end scenario from the order form this engine powers: one priced
// necklace and a two-tier gift section. Selecting the necklace unlocks one
// gift pick; deselecting it drops the allowance back to zero and trims the
// prior pick.
func TestEvaluate_SelectThenDeselect(t *testing.T) {
	schema := &model.FormSchema{Items: []model.Item{
		{
			Kind:     model.ItemQuestion,
			Title:    "$1000 necklace",
			Question: &model.Question{ID: "1", Kind: model.QuestionSingleChoice, Options: []string{"$1000 necklace"}},
		},
		{
			Kind:     model.ItemQuestion,
			Title:    "【贈品】滿1000*1、2000*2",
			Question: &model.Question{ID: "2", Kind: model.QuestionMultiChoice, Options: []string{"gift A", "gift B"}},
		},
	}}
	gifts := TagGiftSections(schema)
	idx := BuildIndex(schema, gifts)

	answers := model.AnswerSet{
		"question_1": model.NewValue("$1000 necklace"),
	}

	state := Evaluate(answers, idx, gifts)
	assert.Equal(t, 1000, state.Total)
	assert.Equal(t, 1, state.Gifts[0].MaxSelections)

	// Pick a gift at the unlocked tier
	answers["question_2"] = model.NewListValue([]string{"gift A"})
	state = Evaluate(answers, idx, gifts)
	assert.Equal(t, []string{"gift A"}, state.Gifts[0].Selected)
	assert.Empty(t, state.Gifts[0].Trimmed)

	// Deselect the necklace: total drops, allowance snaps to zero, pick trimmed
	delete(answers, "question_1")
	state = Evaluate(answers, idx, gifts)
	assert.Equal(t, 0, state.Total)
	assert.Equal(t, 0, state.Gifts[0].MaxSelections)
	assert.Empty(t, state.Gifts[0].Selected)
	assert.Equal(t, []string{"gift A"}, state.Gifts[0].Trimmed)
}
