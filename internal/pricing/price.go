package pricing

import (
	"regexp"
	"strconv"
)

// Prices are embedded in question/option text as a dollar sign immediately
// followed by digits, e.g. "經典項鍊 $380". Fixed ASCII convention, no
// locale variants.
var priceRe = regexp.MustCompile(`\$(\d+)`)

// ExtractPrice returns the first embedded price in a label, or ok=false when
// the label carries none. Only the first match counts:
// ExtractPrice("$380 item $500") == 380. Never errors; an empty label is
// simply unpriced.
func ExtractPrice(label string) (int, bool) {
	m := priceRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits too long for int; treat as unpriced
		return 0, false
	}
	return n, true
}
