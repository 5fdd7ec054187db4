package models

import (
	"time"

	"gorm.io/gorm/schema"
)

// Session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// WorkSession is one tracked interval. A nil EndTime means still running.
type WorkSession struct {
	ID        uint       `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserEmail string     `json:"user_email" gorm:"size:191;index:idx_session_user_start,priority:1;not null"`
	StartTime time.Time  `json:"start_time" gorm:"index:idx_session_user_start,priority:2;not null"`
	EndTime   *time.Time `json:"end_time"`
	Status    string     `json:"status"     gorm:"size:16;not null;default:active"`
}

func (WorkSession) TableName(namer schema.Namer) string { return prefixed(namer, "tblsession") }
