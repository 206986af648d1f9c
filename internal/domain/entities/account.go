package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

const (
	// ProviderSiwh marks accounts created by wallet sign-in
	ProviderSiwh = "siwh"
	// ProviderCredential marks the email/password account
	ProviderCredential = "credential"
)

// Account is a provider-specific credential attached to a user
type Account struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"userId"`
	ProviderID string      `json:"providerId"`
	AccountID  string      `json:"accountId"`
	Password   null.String `json:"-"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// SiwhAccountID formats the account id of a wallet account, "address:chainId".
func SiwhAccountID(address, chainID string) string {
	return address + ":" + chainID
}
