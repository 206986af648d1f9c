package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
)

// Key types reported by the mirror node
const (
	KeyTypeED25519         = "ED25519"
	KeyTypeECDSASecp256k1  = "ECDSA_SECP256K1"
	KeyTypeProtobufEncoded = "ProtobufEncoded"
)

var ErrAccountNotFound = errors.New("mirror node: account not found")

// DefaultMirrorURLs are the public mirror node endpoints
var DefaultMirrorURLs = map[hedera.Network]string{
	hedera.Mainnet:    "https://mainnet-public.mirrornode.hedera.com",
	hedera.Testnet:    "https://testnet.mirrornode.hedera.com",
	hedera.Previewnet: "https://previewnet.mirrornode.hedera.com",
}

// AccountKey is the public key guarding a Hedera account
type AccountKey struct {
	Type string `json:"_type"`
	Key  string `json:"key"`
}

type accountResponse struct {
	Account string      `json:"account"`
	Key     *AccountKey `json:"key"`
}

// MirrorClient reads account data from a Hedera mirror node REST API
type MirrorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMirrorClient creates a mirror client for baseURL
func NewMirrorClient(baseURL string, timeout time.Duration) *MirrorClient {
	return &MirrorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetAccountKey fetches the current key of accountID
func (c *MirrorClient) GetAccountKey(ctx context.Context, accountID string) (*AccountKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/accounts/"+accountID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror node request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrAccountNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("mirror node returned status %d", resp.StatusCode)
	}

	var body accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode mirror node response: %w", err)
	}
	if body.Key == nil {
		return nil, fmt.Errorf("mirror node: account %s has no key", accountID)
	}
	return body.Key, nil
}
