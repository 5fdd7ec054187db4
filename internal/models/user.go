package models

import "gorm.io/gorm/schema"

// Defaults applied when the per-user timing preferences are NULL.
const (
	DefaultScreenshotMinutes = 5
	DefaultInactivityMinutes = 30
)

// User is a monitored employee. Timing preferences are stored in minutes.
type User struct {
	UserID              uint   `json:"userid"              gorm:"column:userid;primaryKey;autoIncrement"`
	Email               string `json:"email"               gorm:"size:191;uniqueIndex;not null"`
	Status              string `json:"status"              gorm:"size:32"`
	SSTime              *int   `json:"sstime"              gorm:"column:sstime"`
	InactivityThreshold *int   `json:"inactivitythreshold" gorm:"column:inactivitythreshold"`
}

func (User) TableName(namer schema.Namer) string { return prefixed(namer, "av_user") }

// ScreenshotMinutes returns the screenshot interval, defaulting when unset.
func (u *User) ScreenshotMinutes() int {
	if u.SSTime == nil {
		return DefaultScreenshotMinutes
	}
	return *u.SSTime
}

// InactivityMinutes returns the inactivity threshold, defaulting when unset.
func (u *User) InactivityMinutes() int {
	if u.InactivityThreshold == nil {
		return DefaultInactivityMinutes
	}
	return *u.InactivityThreshold
}
