package recommender

import (
	"sort"
)

// collaborativeScores ranks activities with the trained model: the user's
// top predicted activities first, expanded with activities that the most
// similar users rated highly. A user absent from the training matrix, or
// an untrained model, yields an empty ranking.
func (s *Service) collaborativeScores(userID uint, model *FactorModel) []uint64 {
	if model.IsEmpty() {
		return nil
	}

	userIdx, ok := model.Matrix.UserIndexOf(userID)
	if !ok || userIdx >= len(model.UserFactors) {
		return nil
	}

	recs := s.topPredicted(model, userIdx)

	for _, neighbor := range s.similarUsers(model, userIdx) {
		recs = append(recs, s.highlyRated(model, neighbor)...)
	}

	return dedupeTruncate(recs, s.cfg.ResultSize)
}

// topPredicted scores every activity column against the user's latent
// vector and keeps the best ResultSize, mapped back to activity ids.
func (s *Service) topPredicted(model *FactorModel, userIdx int) []uint64 {
	type scored struct {
		idx   int
		score float64
	}

	list := make([]scored, 0, model.Matrix.NumActivities())
	for j := 0; j < model.Matrix.NumActivities() && j < len(model.ItemFactors); j++ {
		list = append(list, scored{idx: j, score: model.predict(userIdx, j)})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].idx < list[j].idx
	})

	limit := s.cfg.ResultSize
	if limit > len(list) {
		limit = len(list)
	}

	out := make([]uint64, 0, limit)
	for _, sc := range list[:limit] {
		if id, ok := model.Matrix.ActivityIDOf(sc.idx); ok {
			out = append(out, id)
		}
	}
	return out
}

// similarUsers returns the row indexes of the highest-similarity users by
// latent-factor dot product, excluding the querying user.
func (s *Service) similarUsers(model *FactorModel, userIdx int) []int {
	type scored struct {
		idx int
		sim float64
	}

	me := model.UserFactors[userIdx]
	list := make([]scored, 0, len(model.UserFactors)-1)
	for i, other := range model.UserFactors {
		if i == userIdx {
			continue
		}
		list = append(list, scored{idx: i, sim: dot(me, other)})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].sim != list[j].sim {
			return list[i].sim > list[j].sim
		}
		return list[i].idx < list[j].idx
	})

	limit := s.cfg.SimilarUsers
	if limit > len(list) {
		limit = len(list)
	}

	out := make([]int, 0, limit)
	for _, sc := range list[:limit] {
		out = append(out, sc.idx)
	}
	return out
}

// highlyRated collects the activities a user rated at or above the
// neighbor floor, in ascending column order for reproducibility.
func (s *Service) highlyRated(model *FactorModel, userIdx int) []uint64 {
	if userIdx < 0 || userIdx >= len(model.Matrix.Rows) {
		return nil
	}

	cols := make([]int, 0)
	for col, rating := range model.Matrix.Rows[userIdx] {
		if rating >= s.cfg.NeighborRatingFloor {
			cols = append(cols, col)
		}
	}
	sort.Ints(cols)

	out := make([]uint64, 0, len(cols))
	for _, col := range cols {
		if id, ok := model.Matrix.ActivityIDOf(col); ok {
			out = append(out, id)
		}
	}
	return out
}

// dedupeTruncate removes duplicates keeping the first occurrence and caps
// the list length.
func dedupeTruncate(ids []uint64, limit int) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out
}
