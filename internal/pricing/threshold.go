package pricing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"preorder/internal/model"
)

// Gift thresholds are written into the section title free-form, e.g.
// "滿2500*1、5000*2、7000*3、8500*4". By convention only the first tier
// repeats the 滿 marker, so segments without it fall back to a bare
// integer*integer match.
var (
	markedTierRe = regexp.MustCompile(`滿\s*(\d+)\s*\*\s*(\d+)`)
	bareTierRe   = regexp.MustCompile(`(\d+)\s*\*\s*(\d+)`)
)

// ParseThresholds extracts the (amount, gifts) tiers from a gift-section
// label, sorted ascending by amount. Malformed segments are dropped
// silently; empty or all-invalid input yields an empty slice, never an
// error. Duplicate amounts are kept, original order preserved between them.
func ParseThresholds(label string) []model.Threshold {
	if label == "" {
		return nil
	}

	// Full-width comma, ideographic comma, ASCII comma
	segments := strings.FieldsFunc(label, func(r rune) bool {
		return r == '、' || r == '，' || r == ','
	})

	var tiers []model.Threshold
	for _, seg := range segments {
		m := markedTierRe.FindStringSubmatch(seg)
		if m == nil {
			// Tolerates the marker appearing only on the first listed tier.
			// Known ambiguity: unrelated numeric text like "3*2" also matches.
			m = bareTierRe.FindStringSubmatch(seg)
		}
		if m == nil {
			continue
		}
		amount, err1 := strconv.Atoi(m[1])
		gifts, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || amount <= 0 || gifts <= 0 {
			continue
		}
		tiers = append(tiers, model.Threshold{Amount: amount, Gifts: gifts})
	}

	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Amount < tiers[j].Amount
	})
	return tiers
}
