package screenshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/blob"
	"github.com/empmonitor/core/internal/pkg/timeutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service keeps screenshot metadata in SQL and the image bytes in a blob store.
type Service struct {
	db    *gorm.DB
	blobs blob.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(db *gorm.DB, blobs blob.Store, log *zap.Logger) *Service {
	return &Service{db: db, blobs: blobs, log: log, now: time.Now}
}

// Save stores data for email with capture_time = now and returns the new id.
// The blob is written first and removed again if the row insert fails.
func (s *Service) Save(ctx context.Context, email string, data []byte) (uint, error) {
	key := blob.NewKey()
	if err := s.blobs.Put(ctx, key, data); err != nil {
		return 0, fmt.Errorf("store screenshot bytes: %w", err)
	}

	row := models.Screenshot{
		UserID:      email,
		BlobKey:     key,
		Size:        int64(len(data)),
		CaptureTime: s.now().Truncate(time.Second),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphaned screenshot blob", zap.String("key", key), zap.Error(delErr))
		}
		return 0, fmt.Errorf("insert screenshot: %w", err)
	}
	return row.ID, nil
}

// Get returns the image bytes of screenshot id. Missing rows, missing blobs
// and empty payloads are all ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) ([]byte, error) {
	var row models.Screenshot
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get screenshot: %w", err)
	}

	data, err := s.Load(ctx, &row)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

// Load reads the bytes behind row. A row without a blob yields ErrNotFound.
func (s *Service) Load(ctx context.Context, row *models.Screenshot) ([]byte, error) {
	if row.BlobKey == "" {
		return nil, ErrNotFound
	}
	data, err := s.blobs.Get(ctx, row.BlobKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load screenshot %d: %w", row.ID, err)
	}
	return data, nil
}

// List returns the user's screenshots captured in window, newest first.
func (s *Service) List(ctx context.Context, email string, window timeutil.Range) ([]models.Screenshot, error) {
	var rows []models.Screenshot
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND capture_time >= ? AND capture_time < ?", email, window.From, window.To).
		Order("capture_time DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}
	return rows, nil
}
