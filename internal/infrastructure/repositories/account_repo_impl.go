package repositories

import (
	"context"
	"errors"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/models"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// AccountRepository implements linked auth record operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	now := timeNow()
	if account.ID == uuid.Nil {
		account.ID = utils.NewID()
	}
	account.CreatedAt = now
	account.UpdatedAt = now

	m := &models.Account{
		ID:         account.ID,
		UserID:     account.UserID,
		ProviderID: account.ProviderID,
		AccountID:  account.AccountID,
		Password:   account.Password.Ptr(),
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListByUserID lists every account of a user, oldest first
func (r *AccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error) {
	var rows []models.Account
	if err := GetDB(ctx, r.db).
		Where(`"userId" = ?`, userID).
		Order(`"createdAt" ASC`).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entities.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, toAccountEntity(&rows[i]))
	}
	return accounts, nil
}

// GetByProvider gets an account by provider and provider account id
func (r *AccountRepository) GetByProvider(ctx context.Context, providerID, accountID string) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).
		Where(`"providerId" = ? AND "accountId" = ?`, providerID, accountID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// Delete deletes an account by id
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toAccountEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:         m.ID,
		UserID:     m.UserID,
		ProviderID: m.ProviderID,
		AccountID:  m.AccountID,
		Password:   null.StringFromPtr(m.Password),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
