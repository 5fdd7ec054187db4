package user

import (
	"context"
	"errors"

	"github.com/empmonitor/core/internal/models"
	"gorm.io/gorm"
)

// Service is the account store. It reads the admin gate table and the user
// table independently; neither lookup implies the other.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// FindActiveAccount returns the Active admin record for email, or nil.
func (s *Service) FindActiveAccount(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).
		Where("email = ? AND accstatus = ?", email, models.StatusActive).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindActiveUser returns the Active user record for email, or nil.
func (s *Service) FindActiveUser(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, models.StatusActive).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Profile returns the profile stub for email.
func (s *Service) Profile(email string) ProfileResponse {
	return ProfileResponse{Email: email, Settings: map[string]interface{}{}}
}
