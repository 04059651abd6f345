package domain

import (
	"time"
)

// CREATE TABLE public.user_activity_interaction (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id           BIGINT NOT NULL,
//     activity_id       BIGINT NOT NULL,
//     interaction_type  TEXT NOT NULL,
//     rating            DOUBLE PRECISION,
//     created_at        TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, activity_id, interaction_type)
// );

// ActivityInteraction is one explicit or implicit signal a user left on an
// activity. Rating is nullable: when absent the recommender derives it from
// the interaction type.
type ActivityInteraction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null" json:"user_id"`
	ActivityID      uint64    `gorm:"column:activity_id;not null" json:"activity_id"`
	InteractionType string    `gorm:"column:interaction_type;not null" json:"interaction_type"`
	Rating          *float64  `gorm:"column:rating" json:"rating,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityInteraction) TableName() string {
	return "user_activity_interaction"
}
