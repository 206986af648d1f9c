package repositories

import (
	"context"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
)

// ChallengeStore holds single-use sign-in nonces keyed by (address, chainID).
// Missing and expired nonces are both reported as errors.ErrNotFound.
type ChallengeStore interface {
	// Issue stores value for the key, replacing any live nonce.
	Issue(ctx context.Context, address, chainID, value string, ttl time.Duration) error
	Peek(ctx context.Context, address, chainID string) (*entities.Nonce, error)
	// Consume atomically deletes the nonce if it still holds value. A nonce
	// replaced by a later Issue is left in place and reported as ErrNotFound.
	Consume(ctx context.Context, address, chainID, value string) (*entities.Nonce, error)
}
