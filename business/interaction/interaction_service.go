package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventura/domain"
	"adventura/pkg/logger"
)

// Preference bump policy: an interaction on an activity raises the
// user's standing with that activity's category. New pairs start at
// level 3; repeated interactions push the level to 4 and then 5.
const (
	initialPreferenceLevel = 3
	levelFourThreshold     = 3
	levelFiveThreshold     = 5
)

var ErrActivityNotFound = errors.New("activity not found")

// ---- Repository interfaces ----

type InteractionRepository interface {
	Upsert(ctx context.Context, interaction *domain.ActivityInteraction) error
}

type ActivityCatalog interface {
	FindByID(ctx context.Context, id uint64) (domain.Activity, error)
}

type PreferenceRepository interface {
	Find(ctx context.Context, userID uint, categoryID uint64) (domain.UserPreference, bool, error)
	Upsert(ctx context.Context, pref *domain.UserPreference) error
}

// RetrainSignal lets the engine count ingested interactions without this
// package depending on it.
type RetrainSignal interface {
	NoteInteraction()
}

// ---- Service ----

type Service struct {
	interRepo InteractionRepository
	catalog   ActivityCatalog
	prefRepo  PreferenceRepository
	retrain   RetrainSignal
}

func NewService(
	interRepo InteractionRepository,
	catalog ActivityCatalog,
	prefRepo PreferenceRepository,
	retrain RetrainSignal,
) *Service {
	return &Service{
		interRepo: interRepo,
		catalog:   catalog,
		prefRepo:  prefRepo,
		retrain:   retrain,
	}
}

type TrackInput struct {
	UserID          uint
	ActivityID      uint64
	InteractionType string
	Rating          *float64
}

// Track records one interaction: the row is upserted, the user's category
// preference is bumped, and the retrain counter advances. Preference-bump
// failures are logged but do not lose the interaction itself.
func (s *Service) Track(ctx context.Context, in TrackInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if in.InteractionType == "" {
		return errors.New("interaction_type is required")
	}

	activity, err := s.catalog.FindByID(ctx, in.ActivityID)
	if err != nil {
		return ErrActivityNotFound
	}

	row := domain.ActivityInteraction{
		UserID:          in.UserID,
		ActivityID:      in.ActivityID,
		InteractionType: in.InteractionType,
		Rating:          in.Rating,
	}
	if err := s.interRepo.Upsert(ctx, &row); err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}

	if err := s.bumpPreference(ctx, in.UserID, activity.CategoryID); err != nil {
		logger.Warn("preference_bump_failed",
			"user_id", in.UserID,
			"category_id", activity.CategoryID,
			"error", err,
		)
	}

	if s.retrain != nil {
		s.retrain.NoteInteraction()
	}

	return nil
}

func (s *Service) bumpPreference(ctx context.Context, userID uint, categoryID uint64) error {
	pref, found, err := s.prefRepo.Find(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("load preference: %w", err)
	}

	if !found {
		pref = domain.UserPreference{
			UserID:           userID,
			CategoryID:       categoryID,
			PreferenceLevel:  initialPreferenceLevel,
			InteractionCount: 1,
		}
	} else {
		// The level steps on the count as it stood before this
		// interaction, so level 4 lands on the fourth contact and
		// level 5 on the sixth.
		switch {
		case pref.InteractionCount >= levelFiveThreshold:
			pref.PreferenceLevel = 5
		case pref.InteractionCount >= levelFourThreshold:
			pref.PreferenceLevel = 4
		}
		pref.InteractionCount++
	}

	pref.LastUpdated = time.Now()

	if err := s.prefRepo.Upsert(ctx, &pref); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}

	return nil
}
