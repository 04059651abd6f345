package activity

import (
	"context"
	"fmt"

	"adventura/domain"
)

// ActivityRepository contract interface
type ActivityRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Activity, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Activity, error)
	FindPopularIDs(ctx context.Context, limit int) ([]uint64, error)
}

type Service struct {
	repo ActivityRepository
}

func NewService(repo ActivityRepository) *Service {
	return &Service{repo: repo}
}

// PopularActivityIDs is the popularity fallback callers substitute when
// personalized scoring has nothing to say about a user.
func (s *Service) PopularActivityIDs(ctx context.Context, limit int) ([]domain.RecommendedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}

	ids, err := s.repo.FindPopularIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load popular activities: %w", err)
	}

	items := make([]domain.RecommendedItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.RecommendedItem{
			ID:   id,
			Type: domain.RecommendedItemTypeActivity,
		})
	}

	return items, nil
}

// ActivitiesByIDs resolves ranked ids into full activity rows, preserving
// the ranking order. Ids that no longer exist are dropped.
func (s *Service) ActivitiesByIDs(ctx context.Context, ids []uint64) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Activity{}, nil
	}

	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	byID := make(map[uint64]domain.Activity, len(rows))
	for _, a := range rows {
		byID[a.ActivityID] = a
	}

	out := make([]domain.Activity, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}

	return out, nil
}
