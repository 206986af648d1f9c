package usecases_test

import (
	"context"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock SignatureVerifier
type MockSignatureVerifier struct {
	mock.Mock
}

func (m *MockSignatureVerifier) Verify(ctx context.Context, params entities.VerifyMessageParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

// Mock SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, user *entities.User) (*entities.Session, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *entities.User) *entities.Session); ok {
		return fn(ctx, user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

// Mock EmailVerificationSender
type MockEmailVerificationSender struct {
	mock.Mock
}

func (m *MockEmailVerificationSender) SendVerificationEmail(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock VerificationMailer
type MockVerificationMailer struct {
	mock.Mock
}

func (m *MockVerificationMailer) SendVerification(ctx context.Context, to, name, link string) error {
	args := m.Called(ctx, to, name, link)
	return args.Error(0)
}

// Mock SessionRevoker
type MockSessionRevoker struct {
	mock.Mock
}

func (m *MockSessionRevoker) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Mock ChallengeStore
type MockChallengeStore struct {
	mock.Mock
}

func (m *MockChallengeStore) Issue(ctx context.Context, address, chainID, value string, ttl time.Duration) error {
	args := m.Called(ctx, address, chainID, value, ttl)
	return args.Error(0)
}

func (m *MockChallengeStore) Peek(ctx context.Context, address, chainID string) (*entities.Nonce, error) {
	args := m.Called(ctx, address, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Nonce), args.Error(1)
}

func (m *MockChallengeStore) Consume(ctx context.Context, address, chainID, value string) (*entities.Nonce, error) {
	args := m.Called(ctx, address, chainID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Nonce), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByProvider(ctx context.Context, providerID, accountID string) (*entities.Account, error) {
	args := m.Called(ctx, providerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock WalletAddressRepository
type MockWalletAddressRepository struct {
	mock.Mock
}

func (m *MockWalletAddressRepository) Create(ctx context.Context, wallet *entities.WalletAddress) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletAddressRepository) GetByAddressAndChain(ctx context.Context, address, chainID string) (*entities.WalletAddress, error) {
	args := m.Called(ctx, address, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletAddress), args.Error(1)
}

func (m *MockWalletAddressRepository) GetFirstByAddress(ctx context.Context, address string) (*entities.WalletAddress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletAddress), args.Error(1)
}

func (m *MockWalletAddressRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletAddress, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WalletAddress), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletAddressRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletAddressRepository) DeleteByAddressAndChain(ctx context.Context, userID uuid.UUID, address, chainID string) error {
	args := m.Called(ctx, userID, address, chainID)
	return args.Error(0)
}
