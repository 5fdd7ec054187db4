package models

import (
	"time"

	"gorm.io/gorm/schema"
)

// Screenshot is the metadata row of a captured image. The bytes live in the
// blob store under BlobKey.
type Screenshot struct {
	ID          uint      `json:"id"           gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id"      gorm:"column:user_id;size:191;index:idx_snap_user_time,priority:1;not null"`
	BlobKey     string    `json:"-"            gorm:"size:191"`
	Size        int64     `json:"size"`
	CaptureTime time.Time `json:"capture_time" gorm:"index:idx_snap_user_time,priority:2;not null"`
}

func (Screenshot) TableName(namer schema.Namer) string { return prefixed(namer, "av_tblsnap") }

// Blob holds opaque bytes for the database blob backend.
type Blob struct {
	Key       string    `gorm:"size:191;primaryKey"`
	Data      []byte    `gorm:"type:longblob"`
	CreatedAt time.Time
}

func (Blob) TableName(namer schema.Namer) string { return prefixed(namer, "av_blob") }
