package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createIdentityTables(t, db)
	u := &UnitOfWorkImpl{db: db}
	users := NewUserRepository(db)
	wallets := NewWalletAddressRepository(db)
	ctx := context.Background()

	// commit path
	user := &entities.User{Name: "0.0.1001", Email: "0.0.1001@example.com"}
	err := u.Do(ctx, func(ctx context.Context) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return wallets.Create(ctx, &entities.WalletAddress{UserID: user.ID, Address: "0.0.1001", ChainID: "hedera:mainnet", IsPrimary: true})
	})
	require.NoError(t, err)

	_, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// rollback path: the wallet insert conflicts, the user must not survive
	second := &entities.User{Name: "0.0.1002", Email: "0.0.1002@example.com"}
	err = u.Do(ctx, func(ctx context.Context) error {
		if err := users.Create(ctx, second); err != nil {
			return err
		}
		return wallets.Create(ctx, &entities.WalletAddress{UserID: second.ID, Address: "0.0.1001", ChainID: "hedera:mainnet"})
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = users.GetByID(ctx, second.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "user insert must be rolled back")
}

func TestUnitOfWork_NestedDoJoinsOuterTransaction(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}
	users := NewUserRepository(db)

	id := uuid.New()
	err := u.Do(context.Background(), func(ctx context.Context) error {
		inner := u.Do(ctx, func(ctx context.Context) error {
			return users.Create(ctx, &entities.User{ID: id, Name: "n", Email: "nested@example.com"})
		})
		require.NoError(t, inner)
		return errors.New("force rollback")
	})
	require.Error(t, err)

	_, err = users.GetByID(context.Background(), id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnitOfWork_GetDB(t *testing.T) {
	db := newTestDB(t)
	require.NotNil(t, GetDB(context.Background(), db))

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, GetDB(txCtx, db))
	tx.Rollback()
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUnitOfWork_DoCommitFailure_WithHook(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error {
		return errors.New("forced commit fail")
	}

	id := uuid.New()
	err := u.Do(context.Background(), func(ctx context.Context) error {
		return NewUserRepository(db).Create(ctx, &entities.User{ID: id, Name: "x", Email: "x@example.com"})
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to commit transaction")

	_, err = NewUserRepository(db).GetByID(context.Background(), id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
