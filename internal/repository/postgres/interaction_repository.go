package postgres

import (
	"context"
	"fmt"

	"adventura/business/interaction"
	"adventura/business/recommender"
	"adventura/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository struct {
	DB *gorm.DB
}

var (
	_ recommender.InteractionRepository = (*InteractionRepository)(nil)
	_ interaction.InteractionRepository = (*InteractionRepository)(nil)
)

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) FetchInteractions(ctx context.Context) ([]domain.ActivityInteraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ActivityInteraction
	err := r.DB.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user_activity_interaction: %w", err)
	}

	return rows, nil
}

func (r *InteractionRepository) Upsert(ctx context.Context, row *domain.ActivityInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "activity_id"}, {Name: "interaction_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"rating"}),
		},
	).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user_activity_interaction: %w", err)
	}

	return nil
}
