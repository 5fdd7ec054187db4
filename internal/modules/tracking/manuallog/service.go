package manuallog

import (
	"context"
	"fmt"
	"time"

	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/timeutil"
	"gorm.io/gorm"
)

// Entry is a parsed manual interval.
type Entry struct {
	Email     string
	StartTime time.Time
	EndTime   time.Time
	Notes     string
}

// Service is the manual log store.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create inserts a log and returns its id.
func (s *Service) Create(ctx context.Context, e Entry) (uint, error) {
	row := models.ManualLog{
		UserEmail: e.Email,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
		CreatedAt: s.now().Truncate(time.Second),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert manual log: %w", err)
	}
	return row.ID, nil
}

// Update replaces start, end and notes of the log matching (id, email).
// A mismatch affects zero rows and is not an error.
func (s *Service) Update(ctx context.Context, id uint, e Entry) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.ManualLog{}).
		Where("id = ? AND user_email = ?", id, e.Email).
		Updates(map[string]interface{}{
			"start_time": e.StartTime,
			"end_time":   e.EndTime,
			"notes":      e.Notes,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("update manual log: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes the log by id regardless of owner. Deleting a missing id
// affects zero rows and is not an error.
func (s *Service) Delete(ctx context.Context, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&models.ManualLog{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete manual log: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// List returns the user's logs whose start_time falls in window, newest first.
// A nil window means all time.
func (s *Service) List(ctx context.Context, email string, window *timeutil.Range) ([]models.ManualLog, error) {
	tx := s.db.WithContext(ctx).Where("user_email = ?", email)
	if window != nil {
		tx = tx.Where("start_time >= ? AND start_time < ?", window.From, window.To)
	}

	var rows []models.ManualLog
	if err := tx.Order("start_time DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list manual logs: %w", err)
	}
	return rows, nil
}
