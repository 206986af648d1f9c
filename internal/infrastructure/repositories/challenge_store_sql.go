package repositories

import (
	"context"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainRepos "github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
)

const siwhIdentifierPrefix = "siwh:"

// SQLChallengeStore keeps sign-in nonces in the verification table
type SQLChallengeStore struct {
	verifications domainRepos.VerificationRepository
}

// NewSQLChallengeStore creates a challenge store backed by the verification table
func NewSQLChallengeStore(verifications domainRepos.VerificationRepository) *SQLChallengeStore {
	return &SQLChallengeStore{verifications: verifications}
}

// Issue stores a nonce, replacing any previous one for the same key
func (s *SQLChallengeStore) Issue(ctx context.Context, address, chainID, value string, ttl time.Duration) error {
	return s.verifications.Put(ctx, &entities.Verification{
		Identifier: challengeIdentifier(address, chainID),
		Value:      value,
		ExpiresAt:  timeNow().Add(ttl),
	})
}

// Peek reads the live nonce without consuming it
func (s *SQLChallengeStore) Peek(ctx context.Context, address, chainID string) (*entities.Nonce, error) {
	v, err := s.verifications.Get(ctx, challengeIdentifier(address, chainID))
	if err != nil {
		return nil, err
	}
	return toNonce(address, chainID, v), nil
}

// Consume deletes the live nonce if it still holds value
func (s *SQLChallengeStore) Consume(ctx context.Context, address, chainID, value string) (*entities.Nonce, error) {
	v, err := s.verifications.TakeValue(ctx, challengeIdentifier(address, chainID), value)
	if err != nil {
		return nil, err
	}
	return toNonce(address, chainID, v), nil
}

func challengeIdentifier(address, chainID string) string {
	return siwhIdentifierPrefix + address + ":" + chainID
}

func toNonce(address, chainID string, v *entities.Verification) *entities.Nonce {
	return &entities.Nonce{
		Address:   address,
		ChainID:   chainID,
		Value:     v.Value,
		ExpiresAt: v.ExpiresAt,
	}
}
