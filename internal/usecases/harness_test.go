package usecases_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/models"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/repositories"
	"github.com/Exponential-Science/better-auth-hedera/internal/usecases"
	redispkg "github.com/Exponential-Science/better-auth-hedera/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAddress = "0.0.9167913"
	mainnet     = "hedera:mainnet"
	testnet     = "hedera:testnet"
)

// harness wires the usecases to real sqlite repositories and a miniredis
// challenge store; only the verifier, session and email collaborators are mocks.
type harness struct {
	db       *gorm.DB
	redis    *miniredis.Miniredis
	users    *repositories.UserRepository
	accounts *repositories.AccountRepository
	wallets  *repositories.WalletAddressRepository
	verifs   *repositories.VerificationRepository
	verifier *MockSignatureVerifier
	sessions *MockSessionService
	emails   *MockEmailVerificationSender
	siwh     *usecases.SiwhUsecase
	link     *usecases.WalletLinkUsecase
	nonceSeq atomic.Int64
}

func defaultOptions() usecases.SiwhOptions {
	return usecases.SiwhOptions{
		Domain:     "auth.example.com",
		BaseURL:    "https://auth.example.com",
		Anonymous:  true,
		AutoSignUp: true,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Account{}, &models.WalletAddress{}, &models.Verification{}))
	return db
}

func newHarness(t *testing.T, opts usecases.SiwhOptions) *harness {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redispkg.SetClient(client)

	db := newTestDB(t)
	h := &harness{
		db:       db,
		redis:    srv,
		users:    repositories.NewUserRepository(db),
		accounts: repositories.NewAccountRepository(db),
		wallets:  repositories.NewWalletAddressRepository(db),
		verifs:   repositories.NewVerificationRepository(db),
		verifier: new(MockSignatureVerifier),
		sessions: new(MockSessionService),
		emails:   new(MockEmailVerificationSender),
	}
	challenges := repositories.NewRedisChallengeStore()
	uow := repositories.NewUnitOfWork(db)
	nonces := usecases.NonceGeneratorFunc(func(context.Context) (string, error) {
		return fmt.Sprintf("nonce-%d", h.nonceSeq.Add(1)), nil
	})

	h.siwh = usecases.NewSiwhUsecase(challenges, h.users, h.accounts, h.wallets, uow, nonces, h.verifier, h.sessions, h.emails, opts)
	h.link = usecases.NewWalletLinkUsecase(challenges, h.accounts, h.wallets, uow, h.verifier, opts)
	return h
}

func (h *harness) acceptSignatures() {
	h.verifier.On("Verify", mock.Anything, mock.Anything).Return(true, nil)
}

func (h *harness) issueSessions() {
	h.sessions.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).
		Return(func(_ context.Context, u *entities.User) *entities.Session {
			return &entities.Session{Token: "session-" + u.ID.String(), UserID: u.ID}
		}, nil)
}

func (h *harness) nonce(t *testing.T, address, chainID string) string {
	t.Helper()
	n, err := h.siwh.RequestNonce(context.Background(), address, chainID)
	require.NoError(t, err)
	return n
}

func verifyRequest(address, chainID string) *entities.SiwhVerifyRequest {
	return &entities.SiwhVerifyRequest{
		Message:       "signed message for " + address,
		Signature:     []byte{0x01, 0x02, 0x03},
		WalletAddress: address,
		ChainID:       chainID,
	}
}

// signIn runs nonce + verify and returns the result
func (h *harness) signIn(t *testing.T, address, chainID string) *entities.SiwhVerifyResult {
	t.Helper()
	h.nonce(t, address, chainID)
	res, err := h.siwh.Verify(context.Background(), verifyRequest(address, chainID))
	require.NoError(t, err)
	return res
}

func (h *harness) walletsOf(t *testing.T, user *entities.User) []*entities.WalletAddress {
	t.Helper()
	items, _, err := h.wallets.ListByUserID(context.Background(), user.ID, 0, 0)
	require.NoError(t, err)
	return items
}

func (h *harness) accountsOf(t *testing.T, user *entities.User) []*entities.Account {
	t.Helper()
	items, err := h.accounts.ListByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	return items
}

func identityOf(u *entities.User) *entities.AuthIdentity {
	return &entities.AuthIdentity{UserID: u.ID, Email: u.Email, IsAnonymous: u.IsAnonymous}
}

func timeFarAhead() time.Time {
	return time.Now().Add(time.Hour)
}
