package dto

import (
	"time"
)

// SessionRequest is the password-gate login payload
type SessionRequest struct {
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// SessionResponse carries the issued session token
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
