package entities

import (
	"time"

	"github.com/google/uuid"
)

// WalletAddress binds one Hedera account on one chain to a user.
// (Address, ChainID) maps to at most one user.
type WalletAddress struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Address   string    `json:"address"` // canonical shard.realm.num
	ChainID   string    `json:"chainId"` // CAIP-2, e.g. hedera:mainnet
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}
