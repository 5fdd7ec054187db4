package models

import "gorm.io/gorm/schema"

// StatusActive marks an enabled account or user record.
const StatusActive = "Active"

// Account is the admin-side gate for a principal. Login requires an Active
// Account and an Active User sharing the same email.
type Account struct {
	ID        uint   `json:"id"        gorm:"primaryKey;autoIncrement"`
	Email     string `json:"email"     gorm:"size:191;index;not null"`
	AccStatus string `json:"accstatus" gorm:"column:accstatus;size:32"`
}

func (Account) TableName(namer schema.Namer) string { return prefixed(namer, "av_master_account") }
