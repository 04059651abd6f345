package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventura/domain"
)

// PreferenceRepository contract interface
type PreferenceRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.UserPreference, error)
	ReplaceForUser(ctx context.Context, userID uint, prefs []domain.UserPreference) error
}

type Service struct {
	repo PreferenceRepository
}

func NewService(repo PreferenceRepository) *Service {
	return &Service{repo: repo}
}

type PreferenceInput struct {
	CategoryID      uint64
	PreferenceLevel float64
}

// Replace overwrites the user's declared preferences wholesale, the way
// the preference onboarding screen submits them.
func (s *Service) Replace(ctx context.Context, userID uint, inputs []PreferenceInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(inputs) == 0 {
		return errors.New("preferences must not be empty")
	}

	now := time.Now()
	rows := make([]domain.UserPreference, 0, len(inputs))
	for _, in := range inputs {
		if in.PreferenceLevel < 1 || in.PreferenceLevel > 5 {
			return fmt.Errorf("preference level for category %d out of range [1,5]", in.CategoryID)
		}
		rows = append(rows, domain.UserPreference{
			UserID:          userID,
			CategoryID:      in.CategoryID,
			PreferenceLevel: in.PreferenceLevel,
			LastUpdated:     now,
		})
	}

	if err := s.repo.ReplaceForUser(ctx, userID, rows); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, userID uint) ([]domain.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.FindByUser(ctx, userID)
}
