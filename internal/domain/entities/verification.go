package entities

import (
	"time"

	"github.com/google/uuid"
)

// Verification is a short-lived value keyed by identifier
// (sign-in nonces, email verification tokens).
type Verification struct {
	ID         uuid.UUID
	Identifier string
	Value      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Nonce is a one-time sign-in challenge for (Address, ChainID)
type Nonce struct {
	Address   string
	ChainID   string
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the nonce is past its expiry at now.
func (n *Nonce) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
