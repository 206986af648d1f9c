package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated session issued after a successful sign-in
type Session struct {
	Token        string    `json:"token"`
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
