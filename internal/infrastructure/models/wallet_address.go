package models

import (
	"time"

	"github.com/google/uuid"
)

type WalletAddress struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:userId;type:uuid;not null;index"`
	Address   string    `gorm:"column:address;type:varchar(64);not null;uniqueIndex:idx_wallet_address_chain;index"`
	ChainID   string    `gorm:"column:chainId;type:varchar(64);not null;uniqueIndex:idx_wallet_address_chain"`
	IsPrimary bool      `gorm:"column:isPrimary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:createdAt"`
}

func (WalletAddress) TableName() string {
	return "walletAddress"
}
