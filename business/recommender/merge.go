package recommender

import (
	"sort"

	"adventura/domain"
)

// mergeRanked combines the two scorers' ranked lists by weighted
// positional scoring: cf[i] contributes CFBaseWeight-i, cbf[i] adds
// CBFBaseWeight-i on top of any collaborative score for the same
// activity. The function is pure; identical inputs always produce the
// same ordering.
func mergeRanked(cbf, cf []uint64, cfg Config) []domain.RecommendedItem {
	scores := make(map[uint64]int, len(cbf)+len(cf))

	for i, id := range cf {
		scores[id] += cfg.CFBaseWeight - i
	}
	for i, id := range cbf {
		scores[id] += cfg.CBFBaseWeight - i
	}

	ids := make([]uint64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	limit := cfg.ResultSize
	if limit > len(ids) {
		limit = len(ids)
	}

	out := make([]domain.RecommendedItem, 0, limit)
	for _, id := range ids[:limit] {
		out = append(out, domain.RecommendedItem{
			ID:   id,
			Type: domain.RecommendedItemTypeActivity,
		})
	}
	return out
}
