package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  int
		ok    bool
	}{
		{name: "empty label", label: "", want: 0, ok: false},
		{name: "no price", label: "經典項鍊", want: 0, ok: false},
		{name: "price only", label: "$380", want: 380, ok: true},
		{name: "price embedded", label: "經典項鍊 $380 限量", want: 380, ok: true},
		{name: "first match wins", label: "$380 item $500", want: 380, ok: true},
		{name: "dollar sign without digits", label: "售價 $ 380", want: 0, ok: false},
		{name: "digits without dollar sign", label: "380 元", want: 0, ok: false},
		{name: "price at end", label: "升級禮盒包裝 $50", want: 50, ok: true},
		{name: "zero price", label: "試用包 $0", want: 0, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPrice(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
