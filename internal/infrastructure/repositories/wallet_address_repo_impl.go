package repositories

import (
	"context"
	"errors"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/models"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletAddressRepository implements wallet credential operations
type WalletAddressRepository struct {
	db *gorm.DB
}

// NewWalletAddressRepository creates a new wallet address repository
func NewWalletAddressRepository(db *gorm.DB) *WalletAddressRepository {
	return &WalletAddressRepository{db: db}
}

// Create creates a new wallet credential. A duplicate (address, chainId)
// is reported as ErrAlreadyExists.
func (r *WalletAddressRepository) Create(ctx context.Context, wallet *entities.WalletAddress) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = utils.NewID()
	}
	wallet.CreatedAt = timeNow()

	m := &models.WalletAddress{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Address:   wallet.Address,
		ChainID:   wallet.ChainID,
		IsPrimary: wallet.IsPrimary,
		CreatedAt: wallet.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByAddressAndChain gets the credential for an exact (address, chainId)
func (r *WalletAddressRepository) GetByAddressAndChain(ctx context.Context, address, chainID string) (*entities.WalletAddress, error) {
	var m models.WalletAddress
	if err := GetDB(ctx, r.db).
		Where(`address = ? AND "chainId" = ?`, address, chainID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletAddressEntity(&m), nil
}

// GetFirstByAddress gets the oldest credential for address on any chain
func (r *WalletAddressRepository) GetFirstByAddress(ctx context.Context, address string) (*entities.WalletAddress, error) {
	var m models.WalletAddress
	if err := GetDB(ctx, r.db).
		Where("address = ?", address).
		Order(`"createdAt" ASC`).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletAddressEntity(&m), nil
}

// ListByUserID lists a user's credentials, primary first. limit <= 0 returns all.
func (r *WalletAddressRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletAddress, int64, error) {
	var total int64
	base := GetDB(ctx, r.db).Model(&models.WalletAddress{}).Where(`"userId" = ?`, userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := GetDB(ctx, r.db).
		Where(`"userId" = ?`, userID).
		Order(`"isPrimary" DESC`).
		Order(`"createdAt" ASC`)
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.WalletAddress
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	wallets := make([]*entities.WalletAddress, 0, len(rows))
	for i := range rows {
		wallets = append(wallets, toWalletAddressEntity(&rows[i]))
	}
	return wallets, total, nil
}

// CountByUserID counts a user's credentials
func (r *WalletAddressRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.WalletAddress{}).Where(`"userId" = ?`, userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteByAddressAndChain deletes the user's credential for (address, chainId)
func (r *WalletAddressRepository) DeleteByAddressAndChain(ctx context.Context, userID uuid.UUID, address, chainID string) error {
	result := GetDB(ctx, r.db).
		Where(`"userId" = ? AND address = ? AND "chainId" = ?`, userID, address, chainID).
		Delete(&models.WalletAddress{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toWalletAddressEntity(m *models.WalletAddress) *entities.WalletAddress {
	return &entities.WalletAddress{
		ID:        m.ID,
		UserID:    m.UserID,
		Address:   m.Address,
		ChainID:   m.ChainID,
		IsPrimary: m.IsPrimary,
		CreatedAt: m.CreatedAt,
	}
}
