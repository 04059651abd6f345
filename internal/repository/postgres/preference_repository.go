package postgres

import (
	"context"
	"errors"
	"fmt"

	"adventura/business/interaction"
	"adventura/business/preference"
	"adventura/business/recommender"
	"adventura/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

var (
	_ recommender.PreferenceRepository = (*PreferenceRepository)(nil)
	_ interaction.PreferenceRepository = (*PreferenceRepository)(nil)
	_ preference.PreferenceRepository  = (*PreferenceRepository)(nil)
)

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

func (r *PreferenceRepository) FetchPreferences(ctx context.Context, userID uint) ([]domain.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.UserPreference
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user_preferences: %w", err)
	}

	return rows, nil
}

func (r *PreferenceRepository) FindByUser(ctx context.Context, userID uint) ([]domain.UserPreference, error) {
	return r.FetchPreferences(ctx, userID)
}

func (r *PreferenceRepository) Find(ctx context.Context, userID uint, categoryID uint64) (domain.UserPreference, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreference{}, false, fmt.Errorf("context error: %w", err)
	}

	var row domain.UserPreference
	err := r.DB.WithContext(ctx).
		First(&row, "user_id = ? AND category_id = ?", userID, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserPreference{}, false, nil
	}
	if err != nil {
		return domain.UserPreference{}, false, fmt.Errorf("failed to query user_preferences: %w", err)
	}

	return row, true, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *domain.UserPreference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preference_level", "interaction_count", "last_updated",
			}),
		},
	).Create(pref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user_preferences: %w", err)
	}

	return nil
}

// ReplaceForUser swaps the user's preference rows atomically.
func (r *PreferenceRepository) ReplaceForUser(ctx context.Context, userID uint, prefs []domain.UserPreference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserPreference{}).Error; err != nil {
			return err
		}
		if len(prefs) == 0 {
			return nil
		}
		return tx.Create(&prefs).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace user_preferences: %w", err)
	}

	return nil
}
