package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/empmonitor/core/internal/models"
	"gorm.io/gorm"
)

// DBStore keeps payloads in the av_blob table.
type DBStore struct{ db *gorm.DB }

func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{db: db} }

func (s *DBStore) Put(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	row := models.Blob{Key: key, Data: data}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert blob: %w", err)
	}
	return nil
}

func (s *DBStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row models.Blob
	err := s.db.WithContext(ctx).Where("`key` = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blob: %w", err)
	}
	return row.Data, nil
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("`key` = ?", key).Delete(&models.Blob{}).Error; err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
