package session

import "errors"

// ErrNotFound is returned when no session matches the (id, email) pair.
var ErrNotFound = errors.New("session not found")

// SessionDTO identifies the owner of a session request.
type SessionDTO struct {
	UserEmail string `json:"user_email" binding:"required"`
}

type startResponse struct {
	SessionID uint `json:"session_id"`
}

type endResponse struct {
	Status string `json:"status"`
}
