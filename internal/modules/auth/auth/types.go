package auth

import (
	"context"
	"errors"

	"github.com/empmonitor/core/internal/models"
)

// ErrInvalidCredentials covers every failed login precondition.
var ErrInvalidCredentials = errors.New("invalid credentials or inactive account")

// AccountLookup reads the two tables that gate a login.
type AccountLookup interface {
	FindActiveAccount(ctx context.Context, email string) (*models.Account, error)
	FindActiveUser(ctx context.Context, email string) (*models.User, error)
}

// LoginDTO is the /login request body. Both fields must be present but may be
// empty; an empty email fails like any unknown one.
type LoginDTO struct {
	Email    *string `json:"email"    binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// TimingConfig is returned to the desktop client after a successful login.
// Both intervals are in seconds.
type TimingConfig struct {
	Email               string `json:"email"`
	SSTime              int    `json:"sstime"`
	InactivityThreshold int    `json:"inactivitythreshold"`
}
