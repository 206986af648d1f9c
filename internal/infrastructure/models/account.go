package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"column:userId;type:uuid;not null;index"`
	ProviderID string    `gorm:"column:providerId;type:varchar(64);not null;uniqueIndex:idx_account_provider"`
	AccountID  string    `gorm:"column:accountId;type:varchar(255);not null;uniqueIndex:idx_account_provider"`
	Password   *string   `gorm:"column:password;type:text"`
	CreatedAt  time.Time `gorm:"column:createdAt"`
	UpdatedAt  time.Time `gorm:"column:updatedAt"`
}

func (Account) TableName() string {
	return "account"
}
