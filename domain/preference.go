package domain

import (
	"time"
)

// CREATE TABLE public.user_preferences (
//     user_id            BIGINT NOT NULL,
//     category_id        BIGINT NOT NULL,
//     preference_level   DOUBLE PRECISION NOT NULL,
//     interaction_count  INT DEFAULT 0,
//     last_updated       TIMESTAMPTZ DEFAULT NOW(),
//     PRIMARY KEY (user_id, category_id)
// );

type UserPreference struct {
	UserID           uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	CategoryID       uint64    `gorm:"column:category_id;primaryKey" json:"category_id"`
	PreferenceLevel  float64   `gorm:"column:preference_level;not null" json:"preference_level"`
	InteractionCount int       `gorm:"column:interaction_count;default:0" json:"interaction_count"`
	LastUpdated      time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
