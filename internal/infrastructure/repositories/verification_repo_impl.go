package repositories

import (
	"context"
	"errors"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/infrastructure/models"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationRepository implements the verification table. Expired rows
// read as ErrNotFound.
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Put stores v under its identifier, replacing any previous row. The row id
// changes on every Put so a Take racing against it cannot delete the new value.
func (r *VerificationRepository) Put(ctx context.Context, v *entities.Verification) error {
	now := timeNow()
	v.ID = utils.NewID()
	v.CreatedAt = now

	m := &models.Verification{
		ID:         v.ID,
		Identifier: v.Identifier,
		Value:      v.Value,
		ExpiresAt:  v.ExpiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identifier"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "value", "expiresAt", "updatedAt"}),
	}).Create(m).Error
}

// Get reads the live value under identifier
func (r *VerificationRepository) Get(ctx context.Context, identifier string) (*entities.Verification, error) {
	m, err := r.find(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !timeNow().Before(m.ExpiresAt) {
		return nil, domainerrors.ErrNotFound
	}
	return toVerificationEntity(m), nil
}

// Take deletes and returns the live value under identifier. The delete is
// conditional on the row read, so concurrent callers race on a single
// DELETE and only the one that removes the row wins.
func (r *VerificationRepository) Take(ctx context.Context, identifier string) (*entities.Verification, error) {
	return r.take(ctx, identifier, func(string) bool { return true })
}

// TakeValue takes the row under identifier only while it still holds
// value. A row overwritten by Put is left alone.
func (r *VerificationRepository) TakeValue(ctx context.Context, identifier, value string) (*entities.Verification, error) {
	return r.take(ctx, identifier, func(stored string) bool { return stored == value })
}

func (r *VerificationRepository) take(ctx context.Context, identifier string, match func(string) bool) (*entities.Verification, error) {
	m, err := r.find(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !match(m.Value) {
		return nil, domainerrors.ErrNotFound
	}

	deleted, err := r.deleteIfUnchanged(ctx, m)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domainerrors.ErrNotFound
	}

	// deleted either way, but a stale row never counts as a successful take
	if !timeNow().Before(m.ExpiresAt) {
		return nil, domainerrors.ErrNotFound
	}
	return toVerificationEntity(m), nil
}

func (r *VerificationRepository) deleteIfUnchanged(ctx context.Context, m *models.Verification) (bool, error) {
	result := GetDB(ctx, r.db).
		Where("id = ? AND value = ?", m.ID, m.Value).
		Delete(&models.Verification{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *VerificationRepository) find(ctx context.Context, identifier string) (*models.Verification, error) {
	var m models.Verification
	if err := GetDB(ctx, r.db).Where("identifier = ?", identifier).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func toVerificationEntity(m *models.Verification) *entities.Verification {
	return &entities.Verification{
		ID:         m.ID,
		Identifier: m.Identifier,
		Value:      m.Value,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}
