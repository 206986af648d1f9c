package blockchain

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// DER prefixes the mirror node sometimes keeps in front of raw keys
var (
	ed25519DERPrefix   = mustHex("302a300506032b6570032100")
	secp256k1DERPrefix = mustHex("302d300706052b8104000a032200")
)

// KeySource resolves the public key of a Hedera account on a network
type KeySource interface {
	AccountKey(ctx context.Context, network hedera.Network, accountID string) (*AccountKey, error)
}

// AccountKey implements KeySource over the per-network mirror clients
func (f *ClientFactory) AccountKey(ctx context.Context, network hedera.Network, accountID string) (*AccountKey, error) {
	client, err := f.GetMirrorClient(network)
	if err != nil {
		return nil, err
	}
	return client.GetAccountKey(ctx, accountID)
}

// SignatureVerifier checks a signed sign-in message against the account key
// published by the mirror node.
type SignatureVerifier struct {
	keys KeySource
	now  func() time.Time
}

// NewSignatureVerifier creates a verifier
func NewSignatureVerifier(keys KeySource) *SignatureVerifier {
	return &SignatureVerifier{keys: keys, now: time.Now}
}

// Verify reports whether params carries a valid signature over a message
// matching the challenge. A mismatch is (false, nil); only failures to
// reach the key source are returned as errors.
func (v *SignatureVerifier) Verify(ctx context.Context, params entities.VerifyMessageParams) (bool, error) {
	msg, err := hedera.ParseSignInMessage(params.Message)
	if err != nil {
		logger.Debug(ctx, "Rejecting unparsable sign-in message", zap.Error(err))
		return false, nil
	}
	if reason := v.checkMessage(msg, params); reason != "" {
		logger.Debug(ctx, "Rejecting sign-in message", zap.String("reason", reason))
		return false, nil
	}

	account, err := hedera.ParseAccountID(params.Address)
	if err != nil {
		return false, nil
	}
	network, err := hedera.NetworkFromChainID(params.ChainID)
	if err != nil {
		return false, nil
	}

	key, err := v.keys.AccountKey(ctx, network, account.String())
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	return verifyWithKey(key, hedera.SignedMessagePayload(params.Message), params.Signature), nil
}

func (v *SignatureVerifier) checkMessage(msg *hedera.SignInMessage, params entities.VerifyMessageParams) string {
	c := params.Challenge
	switch {
	case c.Domain != "" && msg.Domain != c.Domain:
		return "domain mismatch"
	case msg.Nonce != c.Nonce:
		return "nonce mismatch"
	case c.Version != "" && msg.Version != c.Version:
		return "version mismatch"
	case c.Audience != "" && !strings.HasPrefix(msg.URI, c.Audience):
		return "uri outside audience"
	}

	chainID, err := hedera.NormalizeChainID(msg.ChainID)
	if err != nil || chainID != params.ChainID {
		return "chain mismatch"
	}

	signed, err := hedera.ParseAccountID(msg.Address)
	if err != nil {
		return "bad message address"
	}
	claimed, err := hedera.ParseAccountID(params.Address)
	if err != nil || !signed.SameAccount(claimed) {
		return "address mismatch"
	}

	now := v.now()
	if msg.ExpirationTime != nil && !now.Before(*msg.ExpirationTime) {
		return "message expired"
	}
	if msg.NotBefore != nil && now.Before(*msg.NotBefore) {
		return "message not yet valid"
	}
	return ""
}

func verifyWithKey(key *AccountKey, payload, sig []byte) bool {
	raw, err := hex.DecodeString(strings.TrimPrefix(key.Key, "0x"))
	if err != nil {
		return false
	}

	switch key.Type {
	case KeyTypeED25519:
		raw = bytes.TrimPrefix(raw, ed25519DERPrefix)
		if len(raw) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(raw), payload, sig)
	case KeyTypeECDSASecp256k1:
		raw = bytes.TrimPrefix(raw, secp256k1DERPrefix)
		if len(sig) == 65 {
			sig = sig[:64]
		}
		if len(sig) != 64 {
			return false
		}
		return ethcrypto.VerifySignature(raw, ethcrypto.Keccak256(payload), sig)
	default:
		// threshold and key-list accounts cannot sign a personal message
		return false
	}
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
