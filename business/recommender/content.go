package recommender

import (
	"context"
	"sort"

	"adventura/pkg/logger"
)

// contentBasedScores ranks activities by the user's decayed category
// preference, with a fixed bonus for activities the user already
// interacted with. A user without preferences gets an empty ranking;
// upstream callers decide whether to substitute a popularity fallback.
func (s *Service) contentBasedScores(ctx context.Context, userID uint) []uint64 {
	prefs, err := s.decayedPreferences(ctx, userID)
	if err != nil {
		logger.Warn("content_scoring_failed", "user_id", userID, "error", err)
		return nil
	}
	if len(prefs) == 0 {
		return nil
	}

	activities, err := s.activityRepo.FetchActivities(ctx)
	if err != nil {
		logger.Warn("content_scoring_failed", "user_id", userID, "error", err)
		return nil
	}

	levelByCategory := make(map[uint64]float64, len(prefs))
	for _, p := range prefs {
		levelByCategory[p.CategoryID] = p.Level
	}

	interacted := make(map[uint64]struct{})
	if all, err := s.ratedInteractions(ctx); err == nil {
		for _, in := range all {
			if in.UserID == userID {
				interacted[in.ActivityID] = struct{}{}
			}
		}
	}

	type scored struct {
		id    uint64
		score float64
	}
	list := make([]scored, 0, len(activities))
	for _, a := range activities {
		score := levelByCategory[a.CategoryID]
		if _, ok := interacted[a.ActivityID]; ok {
			score += s.cfg.InteractionBonus
		}
		list = append(list, scored{id: a.ActivityID, score: score})
	}

	// Ties break on activity id so rankings are reproducible.
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].id < list[j].id
	})

	limit := s.cfg.ResultSize
	if limit > len(list) {
		limit = len(list)
	}

	out := make([]uint64, 0, limit)
	for _, sc := range list[:limit] {
		out = append(out, sc.id)
	}
	return out
}
