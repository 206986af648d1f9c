package usecases

import (
	"context"
	"errors"
	"net/url"
	"strings"

	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"go.uber.org/zap"
)

// walletRef is a validated wallet address on a normalized chain
type walletRef struct {
	Raw          string
	Canonical    string
	Checksummed  string
	ChainID      string
	Network      hedera.Network
	ChecksumSeen bool
}

// parseWallet validates rawAddress for chainID. Syntax errors, checksum
// mismatches and unknown chains map to their domain errors.
func parseWallet(rawAddress, chainID string) (*walletRef, error) {
	rawAddress = strings.TrimSpace(rawAddress)

	normalized, err := hedera.NormalizeChainID(strings.TrimSpace(chainID))
	if err != nil {
		return nil, domainerrors.ErrUnsupportedChain
	}
	network, err := hedera.NetworkFromChainID(normalized)
	if err != nil {
		return nil, domainerrors.ErrUnsupportedChain
	}

	outcome, err := hedera.Validate(network, rawAddress)
	if err != nil {
		if errors.Is(err, hedera.ErrUnsupportedNetwork) {
			return nil, domainerrors.ErrUnsupportedChain
		}
		return nil, domainerrors.ErrInvalidAddressFormat
	}
	if !outcome.Usable() {
		return nil, domainerrors.ErrInvalidChecksum
	}

	return &walletRef{
		Raw:          rawAddress,
		Canonical:    outcome.Canonical,
		Checksummed:  outcome.CanonicalWithChecksum,
		ChainID:      normalized,
		Network:      network,
		ChecksumSeen: outcome.Status == hedera.ChecksumValid,
	}, nil
}

// verifierAddress renders w in the configured form
func (w *walletRef) verifierAddress(form AddressForm) string {
	switch form {
	case AddressChecksummed:
		return w.Checksummed
	case AddressRaw:
		return w.Raw
	default:
		return w.Canonical
	}
}

// hostOf returns the host of baseURL, or "" when it has none
func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// originOf returns scheme://host[:port] of baseURL
func originOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// internalError logs err with the operation name and hides it behind a
// generic internal error.
func internalError(ctx context.Context, op string, err error) error {
	logger.Error(ctx, "Unexpected failure", zap.String("op", op), zap.Error(err))
	return domainerrors.InternalError(err)
}
