package manuallog

import (
	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/timeutil"
)

// ManualLogDTO is the create and update body. Timestamps are naive local
// wall-clock values.
type ManualLogDTO struct {
	Email     string `json:"email"      binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"   binding:"required"`
	Notes     string `json:"notes"`
}

type listQuery struct {
	Email     string `form:"email" binding:"required"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type logResponse struct {
	ID        uint               `json:"id"`
	UserEmail string             `json:"user_email"`
	StartTime timeutil.Timestamp `json:"start_time"`
	EndTime   timeutil.Timestamp `json:"end_time"`
	Notes     string             `json:"notes"`
	CreatedAt timeutil.Timestamp `json:"created_at"`
}

func toResponse(l *models.ManualLog) logResponse {
	return logResponse{
		ID:        l.ID,
		UserEmail: l.UserEmail,
		StartTime: timeutil.Timestamp(l.StartTime),
		EndTime:   timeutil.Timestamp(l.EndTime),
		Notes:     l.Notes,
		CreatedAt: timeutil.Timestamp(l.CreatedAt),
	}
}
