package pricing

import "preorder/internal/model"

// OrderTotal sums the running order total over every answered field. Pure
// function of the answer set and the static indices, so it is safe (and
// cheap) to call on every mutation.
//
// Per field: the question id is parsed out of the identifier (matrix row
// suffixes stripped); gift-section fields and unknown or malformed ids
// contribute nothing; remaining values are priced by the per-value rule in
// Index.valuePrice.
func OrderTotal(answers model.AnswerSet, idx *Index, gifts *GiftIndex) int {
	total := 0
	for fieldID, value := range answers {
		qid, ok := ParseFieldID(fieldID)
		if !ok {
			continue
		}
		if !idx.Known[qid] {
			continue
		}
		if gifts.Has(qid) {
			// Gift picks are free regardless of any price text in the title
			continue
		}
		for _, v := range value.Strings() {
			total += idx.valuePrice(qid, v)
		}
	}
	return total
}
