package models

import (
	"time"

	"gorm.io/gorm/schema"
)

// ManualLog is a user-entered work interval.
type ManualLog struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserEmail string    `json:"user_email" gorm:"size:191;index:idx_manual_user_start,priority:1;not null"`
	StartTime time.Time `json:"start_time" gorm:"index:idx_manual_user_start,priority:2;not null"`
	EndTime   time.Time `json:"end_time"   gorm:"not null"`
	Notes     string    `json:"notes"      gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (ManualLog) TableName(namer schema.Namer) string { return prefixed(namer, "av_manual_logs") }
