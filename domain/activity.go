package domain

import (
	"time"
)

// CREATE TABLE public.activities (
//     activity_id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_id          BIGINT NOT NULL REFERENCES activity_categories,
//     name                 TEXT NOT NULL,
//     description          TEXT,
//     location             TEXT,
//     price                NUMERIC(10,2),
//     availability_status  BOOLEAN DEFAULT TRUE,
//     created_at           TIMESTAMPTZ DEFAULT NOW()
// );

type Activity struct {
	ActivityID         uint64    `gorm:"primaryKey;column:activity_id;autoIncrement" json:"activity_id"`
	CategoryID         uint64    `gorm:"column:category_id;not null" json:"category_id"`
	Name               string    `gorm:"column:name;type:text;not null" json:"name"`
	Description        string    `gorm:"column:description;type:text" json:"description"`
	Location           string    `gorm:"column:location;type:text" json:"location"`
	Price              float64   `gorm:"column:price" json:"price"`
	AvailabilityStatus bool      `gorm:"column:availability_status;default:true" json:"availability_status"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
