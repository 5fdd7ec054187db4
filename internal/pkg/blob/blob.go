// Package blob stores opaque byte payloads by key.
package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/empmonitor/core/internal/config"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no payload exists under a key.
var ErrNotFound = errors.New("blob not found")

// Store is a key to bytes store.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh random key.
func NewKey() string {
	return uuid.NewString()
}

// New builds the Store selected by cfg.Driver.
func New(cfg config.StorageRuntimeConfig, db *gorm.DB) (Store, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(cfg.S3), nil
	case config.StorageDatabase, "":
		return NewDBStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
