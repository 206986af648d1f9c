package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/pkg/crypto"
	"github.com/Exponential-Science/better-auth-hedera/pkg/jwt"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/Exponential-Science/better-auth-hedera/pkg/redis"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL is used when the manager is built with a zero ttl
const DefaultTTL = 7 * 24 * time.Hour

// Store persists encrypted session payloads
type Store interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Manager issues and resolves sessions. The opaque session token is the
// key into Store; the JWT pair carries the same session id as "sid".
type Manager struct {
	store  Store
	tokens *jwt.Service
	ttl    time.Duration
	now    func() time.Time
}

var generateToken = crypto.NewSessionToken

// NewManager creates a new session manager
func NewManager(store Store, tokens *jwt.Service, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, tokens: tokens, ttl: ttl, now: time.Now}
}

// Create starts a session for user
func (m *Manager) Create(ctx context.Context, user *entities.User) (*entities.Session, error) {
	if user == nil {
		return nil, domainerrors.ErrSessionCreationFailed
	}
	token, err := generateToken()
	if err != nil {
		return nil, errors.Join(domainerrors.ErrSessionCreationFailed, err)
	}

	pair, err := m.tokens.Issue(jwt.Subject{
		UserID:      user.ID,
		Email:       user.Email,
		IsAnonymous: user.IsAnonymous,
		SessionID:   token,
	})
	if err != nil {
		return nil, errors.Join(domainerrors.ErrSessionCreationFailed, err)
	}

	expiresAt := m.now().Add(m.ttl)
	data := &redis.SessionData{
		UserID:       user.ID.String(),
		Email:        user.Email,
		IsAnonymous:  user.IsAnonymous,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    expiresAt,
	}
	if err := m.store.CreateSession(ctx, token, data, m.ttl); err != nil {
		logger.Error(ctx, "Failed to store session", zap.String("userId", user.ID.String()), zap.Error(err))
		return nil, errors.Join(domainerrors.ErrSessionCreationFailed, err)
	}

	return &entities.Session{
		Token:        token,
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Resolve returns the identity behind an opaque session token
func (m *Manager) Resolve(ctx context.Context, token string) (*entities.AuthIdentity, error) {
	if token == "" {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	data, err := m.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, goredis.Nil) || errors.Is(err, redis.ErrSessionCorrupted) {
			return nil, domainerrors.ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !m.now().Before(data.ExpiresAt) {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	return &entities.AuthIdentity{
		UserID:       userID,
		Email:        data.Email,
		IsAnonymous:  data.IsAnonymous,
		SessionToken: token,
	}, nil
}

// ResolveBearer validates an access token and checks its session is still live
func (m *Manager) ResolveBearer(ctx context.Context, accessToken string) (*entities.AuthIdentity, error) {
	claims, err := m.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	identity, err := m.Resolve(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if identity.UserID != claims.UserID {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	return identity, nil
}

// Revoke deletes the session behind token
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.DeleteSession(ctx, token)
}
