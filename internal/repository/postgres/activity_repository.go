package postgres

import (
	"context"
	"errors"
	"fmt"

	"adventura/business/activity"
	"adventura/business/interaction"
	"adventura/business/recommender"
	"adventura/domain"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

var (
	_ recommender.ActivityRepository = (*ActivityRepository)(nil)
	_ activity.ActivityRepository    = (*ActivityRepository)(nil)
	_ interaction.ActivityCatalog    = (*ActivityRepository)(nil)
)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) FetchActivities(ctx context.Context) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.Activity
	err := r.DB.WithContext(ctx).Where("availability_status = ?", true).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}

	return rows, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint64) (domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Activity{}, fmt.Errorf("context error: %w", err)
	}

	var row domain.Activity
	err := r.DB.WithContext(ctx).First(&row, "activity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Activity{}, errors.New("activity not found")
	}
	if err != nil {
		return domain.Activity{}, fmt.Errorf("failed to find activity: %w", err)
	}

	return row, nil
}

func (r *ActivityRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Activity{}, nil
	}

	var rows []domain.Activity
	err := r.DB.WithContext(ctx).Where("activity_id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}

	return rows, nil
}

// FindPopularIDs ranks activities by interaction volume.
func (r *ActivityRepository) FindPopularIDs(ctx context.Context, limit int) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Table("activities").
		Select("activities.activity_id").
		Joins("LEFT JOIN user_activity_interaction i ON i.activity_id = activities.activity_id").
		Where("activities.availability_status = ?", true).
		Group("activities.activity_id").
		Order("COUNT(i.id) DESC, activities.activity_id ASC").
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query popular activities: %w", err)
	}

	return ids, nil
}
