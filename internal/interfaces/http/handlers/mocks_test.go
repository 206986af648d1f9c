package handlers

import (
	"context"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockSiwhService struct {
	mock.Mock
}

func (m *mockSiwhService) RequestNonce(ctx context.Context, walletAddress, chainID string) (string, error) {
	args := m.Called(ctx, walletAddress, chainID)
	return args.String(0), args.Error(1)
}

func (m *mockSiwhService) Verify(ctx context.Context, req *entities.SiwhVerifyRequest) (*entities.SiwhVerifyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SiwhVerifyResult), args.Error(1)
}

type mockWalletLinkService struct {
	mock.Mock
}

func (m *mockWalletLinkService) Link(ctx context.Context, identity *entities.AuthIdentity, req *entities.SiwhLinkRequest) (*entities.SiwhLinkResult, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SiwhLinkResult), args.Error(1)
}

func (m *mockWalletLinkService) Unlink(ctx context.Context, identity *entities.AuthIdentity, walletAddress, chainID string) error {
	args := m.Called(ctx, identity, walletAddress, chainID)
	return args.Error(0)
}

func (m *mockWalletLinkService) ListWallets(ctx context.Context, identity *entities.AuthIdentity, page utils.PaginationParams) (*entities.WalletList, error) {
	args := m.Called(ctx, identity, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletList), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
