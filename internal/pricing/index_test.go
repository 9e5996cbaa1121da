package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preorder/internal/model"
)

func TestParseFieldID(t *testing.T) {
	tests := []struct {
		name    string
		fieldID string
		wantID  string
		ok      bool
	}{
		{name: "plain field", fieldID: "question_123", wantID: "123", ok: true},
		{name: "matrix row suffix stripped", fieldID: "question_123_0", wantID: "123", ok: true},
		{name: "nested suffix stripped", fieldID: "question_123_0_1", wantID: "123", ok: true},
		{name: "missing prefix", fieldID: "q_123", ok: false},
		{name: "empty id", fieldID: "question_", ok: false},
		{name: "bare prefix", fieldID: "question", ok: false},
		{name: "empty string", fieldID: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseFieldID(tt.fieldID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func testSchema() *model.FormSchema {
	return &model.FormSchema{
		ID:    "form-1",
		Title: "週年慶預購單",
		Items: []model.Item{
			{
				Kind:  model.ItemQuestion,
				Title: "經典項鍊 $1000",
				Question: &model.Question{
					ID:      "100",
					Title:   "經典項鍊 $1000",
					Kind:    model.QuestionSingleChoice,
					Options: []string{"經典項鍊 $1000"},
				},
			},
			{
				Kind:  model.ItemQuestion,
				Title: "手鍊（款式擇一）",
				Question: &model.Question{
					ID:      "200",
					Title:   "手鍊（款式擇一）",
					Kind:    model.QuestionDropdown,
					Options: []string{"細版 $380", "粗版 $500"},
				},
			},
			{Kind: model.ItemPageBreak},
			{
				Kind:  model.ItemGroup,
				Title: "耳環加購 $250",
				Questions: []model.Question{
					{ID: "300", Kind: model.QuestionMultiChoice, Options: []string{"金色", "銀色"}},
					{ID: "301", Kind: model.QuestionMultiChoice, Options: []string{"大", "小"}},
				},
			},
			{
				Kind:  model.ItemQuestion,
				Title: "【贈品】滿額贈 $9999（滿1000*1、2000*2）",
				Question: &model.Question{
					ID:      "900",
					Title:   "【贈品】滿額贈 $9999（滿1000*1、2000*2）",
					Kind:    model.QuestionMultiChoice,
					Options: []string{"小卡", "貼紙", "鑰匙圈"},
				},
			},
		},
	}
}

func TestTagGiftSections(t *testing.T) {
	schema := testSchema()
	gifts := TagGiftSections(schema)

	require.Len(t, gifts.Sections, 1)
	g := gifts.Sections[0]
	assert.Equal(t, "900", g.QuestionID)
	assert.Equal(t, []model.Threshold{{Amount: 1000, Gifts: 1}, {Amount: 2000, Gifts: 2}}, g.Thresholds)
	assert.False(t, g.RulesUnavailable())

	assert.True(t, gifts.Has("900"))
	assert.False(t, gifts.Has("100"))
	assert.Nil(t, gifts.Lookup("100"))
}

func TestTagGiftSections_UnparsableTitle(t *testing.T) {
	schema := &model.FormSchema{Items: []model.Item{
		{
			Kind:     model.ItemQuestion,
			Title:    "【贈品】本月贈品",
			Question: &model.Question{ID: "10", Kind: model.QuestionMultiChoice},
		},
	}}
	gifts := TagGiftSections(schema)

	// Still tagged so its fields stay free, but flagged as rules-unavailable
	require.Len(t, gifts.Sections, 1)
	assert.True(t, gifts.Sections[0].RulesUnavailable())
	assert.True(t, gifts.Has("10"))
}

func TestBuildIndex(t *testing.T) {
	schema := testSchema()
	gifts := TagGiftSections(schema)
	idx := BuildIndex(schema, gifts)

	// Question-level prices
	assert.Equal(t, 1000, idx.Question["100"])
	assert.Equal(t, 250, idx.Question["300"])
	assert.Equal(t, 250, idx.Question["301"])

	// Option-level variant prices
	assert.Equal(t, 380, idx.Option["細版 $380"])
	assert.Equal(t, 500, idx.Option["粗版 $500"])

	// Gift question excluded even though its title matches the price pattern
	_, ok := idx.Question["900"]
	assert.False(t, ok)

	// Every question id is known, gift included
	for _, id := range []string{"100", "200", "300", "301", "900"} {
		assert.True(t, idx.Known[id], id)
	}
}

func TestGiftIndexRehydration(t *testing.T) {
	gifts := TagGiftSections(testSchema())

	// A cache round-trip keeps only Sections; NewGiftIndex rebuilds lookup
	rebuilt := NewGiftIndex(gifts.Sections)
	assert.True(t, rebuilt.Has("900"))
	assert.Equal(t, gifts.Lookup("900"), rebuilt.Lookup("900"))
}
