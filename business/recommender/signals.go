package recommender

import (
	"context"
	"fmt"
	"math"

	"adventura/domain"
)

// categoryPreference is a preference row after recency decay.
type categoryPreference struct {
	CategoryID uint64
	Level      float64
}

// ratedInteraction is an interaction row collapsed to the fields the
// matrix builder needs, with the rating resolved.
type ratedInteraction struct {
	UserID     uint
	ActivityID uint64
	Rating     float64
}

// decayedPreferences fetches the user's preference rows and applies
// exponential recency decay, clipping the effective level into
// [PreferenceLevelMin, PreferenceLevelMax]. A user without stored
// preferences yields an empty slice, not an error.
func (s *Service) decayedPreferences(ctx context.Context, userID uint) ([]categoryPreference, error) {
	rows, err := s.prefRepo.FetchPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	now := s.now()
	out := make([]categoryPreference, 0, len(rows))
	for _, row := range rows {
		// Decay counts whole elapsed days; a preference touched earlier
		// today still scores at its full level.
		days := math.Floor(now.Sub(row.LastUpdated).Hours() / 24)
		if days < 0 {
			days = 0
		}

		level := row.PreferenceLevel * math.Exp(-s.cfg.PreferenceDecayRate*days)
		level = clip(level, s.cfg.PreferenceLevelMin, s.cfg.PreferenceLevelMax)

		out = append(out, categoryPreference{
			CategoryID: row.CategoryID,
			Level:      level,
		})
	}

	return out, nil
}

// ratedInteractions fetches every interaction row and resolves its rating:
// an explicit rating wins, otherwise the interaction type's weight applies,
// with unknown types resolving to 0.
func (s *Service) ratedInteractions(ctx context.Context) ([]ratedInteraction, error) {
	rows, err := s.interRepo.FetchInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch interactions: %w", err)
	}

	out := make([]ratedInteraction, 0, len(rows))
	for _, row := range rows {
		out = append(out, ratedInteraction{
			UserID:     row.UserID,
			ActivityID: row.ActivityID,
			Rating:     s.resolveRating(row),
		})
	}

	return out, nil
}

func (s *Service) resolveRating(row domain.ActivityInteraction) float64 {
	var rating float64
	if row.Rating != nil {
		rating = *row.Rating
	} else {
		rating = s.cfg.InteractionWeights[row.InteractionType]
	}

	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		rating = 0
	}

	return clip(rating, 0, s.cfg.RatingMax)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
