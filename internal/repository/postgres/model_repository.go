package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adventura/business/recommender"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The durable store for the trained factor model. One named row holds the
// whole unit (factors + matrix snapshot + index map) as versioned JSON.
const hybridModelName = "hybrid_als"

type recommenderModelRow struct {
	Name      string         `gorm:"column:name;primaryKey"`
	Version   int            `gorm:"column:version;not null"`
	ModelJSON datatypes.JSON `gorm:"column:model_json;type:jsonb"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (recommenderModelRow) TableName() string {
	return "recommender_model"
}

type ModelRepository struct {
	DB *gorm.DB
}

var _ recommender.ModelStore = (*ModelRepository)(nil)

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{DB: db}
}

func (r *ModelRepository) Save(ctx context.Context, model *recommender.FactorModel) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	row := recommenderModelRow{
		Name:      hybridModelName,
		Version:   model.FormatVersion,
		ModelJSON: datatypes.JSON(raw),
		UpdatedAt: time.Now(),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert recommender_model: %w", err)
	}

	return nil
}

func (r *ModelRepository) LoadLatest(ctx context.Context) (*recommender.FactorModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row recommenderModelRow
	err := r.DB.WithContext(ctx).First(&row, "name = ?", hybridModelName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recommender_model: %w", err)
	}

	var model recommender.FactorModel
	if err := json.Unmarshal(row.ModelJSON, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model_json: %w", err)
	}

	return &model, nil
}
