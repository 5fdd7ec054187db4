package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Service struct {
	accounts AccountLookup
	log      *zap.Logger
}

func NewService(accounts AccountLookup, log *zap.Logger) *Service {
	return &Service{accounts: accounts, log: log}
}

// ValidateLogin succeeds when an Active admin record and an Active user record
// both exist for email.
//
// SECURITY: password is accepted but never compared against a stored
// credential. Neither table holds a password hash; any password, including an
// empty one, logs in an active account.
func (s *Service) ValidateLogin(ctx context.Context, email, password string) (*TimingConfig, error) {
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	account, err := s.accounts.FindActiveAccount(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.accounts.FindActiveUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return &TimingConfig{
		Email:               user.Email,
		SSTime:              user.ScreenshotMinutes() * 60,
		InactivityThreshold: user.InactivityMinutes() * 60,
	}, nil
}
