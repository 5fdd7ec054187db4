package session

import (
	"context"
	"fmt"
	"time"

	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/timeutil"
	"gorm.io/gorm"
)

// Service is the session ledger.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Start opens a new running session for email and returns its id.
// Concurrent running sessions for one user are allowed.
func (s *Service) Start(ctx context.Context, email string) (uint, error) {
	row := models.WorkSession{
		UserEmail: email,
		StartTime: s.now().Truncate(time.Second),
		Status:    models.SessionActive,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return row.ID, nil
}

// End stamps end_time and marks the session completed. A session owned by a
// different user is reported as ErrNotFound.
func (s *Service) End(ctx context.Context, id uint, email string) error {
	result := s.db.WithContext(ctx).Model(&models.WorkSession{}).
		Where("id = ? AND user_email = ?", id, email).
		Updates(map[string]interface{}{
			"end_time": s.now().Truncate(time.Second),
			"status":   models.SessionCompleted,
		})
	if result.Error != nil {
		return fmt.Errorf("end session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's sessions ordered by start_time. A nil window
// means all time; statuses, when given, restrict the status column.
func (s *Service) ListByUser(ctx context.Context, email string, window *timeutil.Range, statuses ...string) ([]models.WorkSession, error) {
	tx := s.db.WithContext(ctx).Where("user_email = ?", email)
	if window != nil {
		tx = tx.Where("start_time >= ? AND start_time < ?", window.From, window.To)
	}
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}

	var rows []models.WorkSession
	if err := tx.Order("start_time ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}
