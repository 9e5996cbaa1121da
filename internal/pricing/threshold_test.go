package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"preorder/internal/model"
)

func TestParseThresholds(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  []model.Threshold
	}{
		{
			name:  "empty label",
			label: "",
			want:  nil,
		},
		{
			name:  "no tiers at all",
			label: "感謝您的支持",
			want:  nil,
		},
		{
			name:  "ascending input stays ascending",
			label: "滿2500*1、5000*2、7000*3、8500*4",
			want: []model.Threshold{
				{Amount: 2500, Gifts: 1},
				{Amount: 5000, Gifts: 2},
				{Amount: 7000, Gifts: 3},
				{Amount: 8500, Gifts: 4},
			},
		},
		{
			name:  "out-of-order input is sorted by amount",
			label: "滿7000*3、2500*1、8500*4、5000*2",
			want: []model.Threshold{
				{Amount: 2500, Gifts: 1},
				{Amount: 5000, Gifts: 2},
				{Amount: 7000, Gifts: 3},
				{Amount: 8500, Gifts: 4},
			},
		},
		{
			name:  "malformed segments dropped silently",
			label: "滿2500*1、invalid、5000*2、滿*3",
			want: []model.Threshold{
				{Amount: 2500, Gifts: 1},
				{Amount: 5000, Gifts: 2},
			},
		},
		{
			name:  "all segments invalid",
			label: "滿*、*2、abc",
			want:  nil,
		},
		{
			name:  "fullwidth comma separator",
			label: "滿1000*1，2000*2",
			want: []model.Threshold{
				{Amount: 1000, Gifts: 1},
				{Amount: 2000, Gifts: 2},
			},
		},
		{
			name:  "ascii comma separator",
			label: "滿1000*1,2000*2",
			want: []model.Threshold{
				{Amount: 1000, Gifts: 1},
				{Amount: 2000, Gifts: 2},
			},
		},
		{
			name:  "whitespace around asterisk",
			label: "滿1000 * 1、2000 *2",
			want: []model.Threshold{
				{Amount: 1000, Gifts: 1},
				{Amount: 2000, Gifts: 2},
			},
		},
		{
			name:  "marker repeated on every tier",
			label: "滿1000*1、滿2000*2",
			want: []model.Threshold{
				{Amount: 1000, Gifts: 1},
				{Amount: 2000, Gifts: 2},
			},
		},
		{
			name:  "zero amount or count dropped",
			label: "滿0*1、1000*0、2000*2",
			want: []model.Threshold{
				{Amount: 2000, Gifts: 2},
			},
		},
		{
			name:  "duplicate amounts kept in original order",
			label: "滿1000*1、1000*2",
			want: []model.Threshold{
				{Amount: 1000, Gifts: 1},
				{Amount: 1000, Gifts: 2},
			},
		},
		{
			name:  "tiers embedded in surrounding text",
			label: "【贈品】滿額贈（滿2500*1、5000*2）請依金額選擇",
			want: []model.Threshold{
				{Amount: 2500, Gifts: 1},
				{Amount: 5000, Gifts: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThresholds(tt.label))
		})
	}
}
