package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

var (
	setChallengeValue    = redis.Set
	getChallengeValue    = redis.Get
	delChallengeIfEqual  = redis.DeleteIfEqual
)

type redisChallenge struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RedisChallengeStore keeps sign-in nonces in Redis with a PX expiry.
// Consume deletes only the exact payload it read, so a nonce is handed out
// at most once and a replacement issued in between survives.
type RedisChallengeStore struct {
	prefix string
}

// NewRedisChallengeStore creates a challenge store on the shared Redis client
func NewRedisChallengeStore() *RedisChallengeStore {
	return &RedisChallengeStore{prefix: "siwh:nonce:"}
}

// Issue stores a nonce, replacing any previous one for the same key
func (s *RedisChallengeStore) Issue(ctx context.Context, address, chainID, value string, ttl time.Duration) error {
	payload, err := json.Marshal(redisChallenge{Value: value, ExpiresAt: timeNow().Add(ttl)})
	if err != nil {
		return err
	}
	if err := setChallengeValue(ctx, s.key(address, chainID), string(payload), ttl); err != nil {
		return fmt.Errorf("store nonce: %w", err)
	}
	return nil
}

// Peek reads the live nonce without consuming it
func (s *RedisChallengeStore) Peek(ctx context.Context, address, chainID string) (*entities.Nonce, error) {
	raw, err := getChallengeValue(ctx, s.key(address, chainID))
	return s.decode(address, chainID, raw, err)
}

// Consume deletes the live nonce if it still holds value
func (s *RedisChallengeStore) Consume(ctx context.Context, address, chainID, value string) (*entities.Nonce, error) {
	key := s.key(address, chainID)
	raw, err := getChallengeValue(ctx, key)
	nonce, err := s.decode(address, chainID, raw, err)
	if err != nil {
		return nil, err
	}
	if nonce.Value != value {
		return nil, domainerrors.ErrNotFound
	}

	deleted, err := delChallengeIfEqual(ctx, key, raw)
	if err != nil {
		return nil, fmt.Errorf("consume nonce: %w", err)
	}
	if !deleted {
		return nil, domainerrors.ErrNotFound
	}
	return nonce, nil
}

func (s *RedisChallengeStore) key(address, chainID string) string {
	return s.prefix + address + ":" + chainID
}

func (s *RedisChallengeStore) decode(address, chainID, raw string, err error) (*entities.Nonce, error) {
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	var c redisChallenge
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}
	if !timeNow().Before(c.ExpiresAt) {
		return nil, domainerrors.ErrNotFound
	}
	return &entities.Nonce{
		Address:   address,
		ChainID:   chainID,
		Value:     c.Value,
		ExpiresAt: c.ExpiresAt,
	}, nil
}
