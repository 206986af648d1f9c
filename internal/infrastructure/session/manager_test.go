package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/pkg/jwt"
	"github.com/Exponential-Science/better-auth-hedera/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0000000000000000000000000000000000000000000000000000000000000000"

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.SetClient(client)

	store, err := redis.NewSessionStore(testKey)
	require.NoError(t, err)
	return NewManager(store, jwt.NewService(jwt.Config{Secret: "secret", Issuer: "auth.example.com", AccessTTL: time.Hour, RefreshTTL: 2 * time.Hour}), time.Hour), srv
}

func testUser() *entities.User {
	return &entities.User{ID: uuid.New(), Email: "0.0.9167913@hedera.local", IsAnonymous: true}
}

func TestManager_CreateAndResolve(t *testing.T) {
	m, srv := newTestManager(t)
	ctx := context.Background()
	user := testUser()

	sess, err := m.Create(ctx, user)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.Equal(t, user.ID, sess.UserID)
	assert.NotEmpty(t, sess.AccessToken)
	assert.True(t, srv.Exists("session:"+sess.Token))
	assert.Equal(t, time.Hour, srv.TTL("session:"+sess.Token))

	identity, err := m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Email, identity.Email)
	assert.True(t, identity.IsAnonymous)
	assert.Equal(t, sess.Token, identity.SessionToken)

	bearer, err := m.ResolveBearer(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, bearer.UserID)
	assert.Equal(t, sess.Token, bearer.SessionToken)
}

func TestManager_ResolveCorruptedPayload(t *testing.T) {
	m, srv := newTestManager(t)
	require.NoError(t, srv.Set("session:tampered", "AAAA"))

	_, err := m.Resolve(context.Background(), "tampered")
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestManager_ResolveMissingOrRevoked(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Resolve(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
	_, err = m.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, sess.Token))
	require.NoError(t, m.Revoke(ctx, ""))

	_, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
	_, err = m.ResolveBearer(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestManager_ResolveExpired(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return sess.ExpiresAt }
	_, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestManager_ResolveBearerRejectsGarbage(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ResolveBearer(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestManager_ResolveBearerRejectsRefreshToken(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)

	_, err = m.ResolveBearer(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestManager_CreateFailures(t *testing.T) {
	m, srv := newTestManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrSessionCreationFailed)

	orig := generateToken
	generateToken = func() (string, error) { return "", errors.New("entropy") }
	_, err = m.Create(ctx, testUser())
	generateToken = orig
	assert.ErrorIs(t, err, domainerrors.ErrSessionCreationFailed)

	srv.Close()
	_, err = m.Create(ctx, testUser())
	assert.ErrorIs(t, err, domainerrors.ErrSessionCreationFailed)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	m := NewManager(nil, nil, 0)
	assert.Equal(t, DefaultTTL, m.ttl)
}
