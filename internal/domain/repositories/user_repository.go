package repositories

import (
	"context"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

// AccountRepository defines linked auth record operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error)
	GetByProvider(ctx context.Context, providerID, accountID string) (*entities.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WalletAddressRepository defines wallet credential operations
type WalletAddressRepository interface {
	Create(ctx context.Context, wallet *entities.WalletAddress) error
	GetByAddressAndChain(ctx context.Context, address, chainID string) (*entities.WalletAddress, error)
	// GetFirstByAddress returns the oldest credential for address on any chain.
	GetFirstByAddress(ctx context.Context, address string) (*entities.WalletAddress, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletAddress, int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByAddressAndChain(ctx context.Context, userID uuid.UUID, address, chainID string) error
}

// VerificationRepository defines operations on short-lived identifier/value pairs
type VerificationRepository interface {
	// Put replaces any value stored under identifier.
	Put(ctx context.Context, v *entities.Verification) error
	Get(ctx context.Context, identifier string) (*entities.Verification, error)
	// Take deletes and returns the value under identifier. Of several
	// concurrent callers at most one succeeds.
	Take(ctx context.Context, identifier string) (*entities.Verification, error)
	// TakeValue is Take restricted to a row still holding value.
	TakeValue(ctx context.Context, identifier, value string) (*entities.Verification, error)
}
