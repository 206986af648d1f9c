package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents an identity owned by the identity store
type User struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	EmailVerified bool        `json:"emailVerified"`
	Image         null.String `json:"image"`
	IsAnonymous   bool        `json:"isAnonymous"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// AuthIdentity is the authenticated caller attached to a request.
// A nil *AuthIdentity means the request carried no valid session.
type AuthIdentity struct {
	UserID      uuid.UUID
	Email       string
	IsAnonymous bool
	// SessionToken is the opaque id of the session the caller presented
	SessionToken string
}
