package aggregate

import (
	"context"

	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/timeutil"
)

// inactiveRatio is the share of the daily span reported as inactive time.
// It is an estimate, not a measured idle gap.
const inactiveRatio = 0.2

// trackedStatuses are the session statuses counted as tracked time.
var trackedStatuses = []string{models.SessionCompleted, models.SessionActive}

// SessionSource reads the session ledger.
type SessionSource interface {
	ListByUser(ctx context.Context, email string, window *timeutil.Range, statuses ...string) ([]models.WorkSession, error)
}

// ManualSource reads the manual log store.
type ManualSource interface {
	List(ctx context.Context, email string, window *timeutil.Range) ([]models.ManualLog, error)
}

// ScreenshotSource reads screenshot metadata and bytes.
type ScreenshotSource interface {
	List(ctx context.Context, email string, window timeutil.Range) ([]models.Screenshot, error)
	Load(ctx context.Context, row *models.Screenshot) ([]byte, error)
}

// DailyRow is one /api/dashboard entry.
type DailyRow struct {
	Date         string `json:"date"`
	TotalHours   string `json:"total_hours"`
	Sessions     int    `json:"sessions"`
	TotalSeconds int64  `json:"total_seconds"`
}

// Summary is the all-time /api/dashboard-summary payload. All counters are
// seconds and default to zero.
type Summary struct {
	Username            string  `json:"username"`
	TotalTrackedSeconds int64   `json:"total_tracked_seconds"`
	ManualSeconds       int64   `json:"manual_seconds"`
	ActivePerDaySeconds int64   `json:"active_per_day_seconds"`
	ActiveTime          int64   `json:"active_time"`
	InactiveTime        float64 `json:"inactive_time"`
	TotalWorked         int64   `json:"total_worked"`

	// Legacy aliases of TotalTrackedSeconds and ManualSeconds.
	TotalTracked int64 `json:"total_tracked"`
	ManualAdded  int64 `json:"manual_added"`
}

// TimelineRow is one session of /api/daily-timeline?date=...
// Running sessions have nil end fields; no current time is substituted.
type TimelineRow struct {
	ID           uint                `json:"id"`
	StartTime    timeutil.Timestamp  `json:"start_time"`
	EndTime      *timeutil.Timestamp `json:"end_time"`
	Status       string              `json:"status"`
	StartTimeFmt string              `json:"start_time_fmt"`
	EndTimeFmt   *string             `json:"end_time_fmt"`
	DurationMin  *int64              `json:"duration_min"`
}

// DateRow is one entry of /api/daily-timeline without a date.
type DateRow struct {
	Date string `json:"date"`
}

// GalleryRow is one /api/screenshots entry. Timestamp is duplicated under
// timestamp_formatted for older clients.
type GalleryRow struct {
	ID                 uint               `json:"id"`
	Timestamp          timeutil.Timestamp `json:"timestamp"`
	TimestampFormatted timeutil.Timestamp `json:"timestamp_formatted"`
	ImageBase64        *string            `json:"image_base64"`
	SizeKB             float64            `json:"size_kb"`
}

type rangeQuery struct {
	Email     string `form:"email" binding:"required"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type emailQuery struct {
	Email string `form:"email" binding:"required"`
}

type timelineQuery struct {
	Email string `form:"email" binding:"required"`
	Date  string `form:"date"`
}
