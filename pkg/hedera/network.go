package hedera

import (
	"errors"
	"fmt"
	"strings"
)

// ChainNamespace is the CAIP-2 namespace for Hedera networks.
const ChainNamespace = "hedera"

// DefaultChainID is used when a request omits the chain.
const DefaultChainID = ChainNamespace + ":" + string(Mainnet)

var ErrUnsupportedNetwork = errors.New("unsupported hedera network")

// Network identifies a Hedera ledger.
type Network string

const (
	Mainnet    Network = "mainnet"
	Testnet    Network = "testnet"
	Previewnet Network = "previewnet"
	Devnet     Network = "devnet"
)

// devnet runs with testnet's ledger id
var ledgerCodes = map[Network]string{
	Mainnet:    "00",
	Testnet:    "01",
	Previewnet: "02",
	Devnet:     "01",
}

// LedgerCode returns the 2-hex-digit ledger identifier used by the checksum.
func (n Network) LedgerCode() (string, bool) {
	code, ok := ledgerCodes[n]
	return code, ok
}

// ChainID returns the CAIP-2 chain id, e.g. "hedera:mainnet".
func (n Network) ChainID() string {
	return ChainNamespace + ":" + string(n)
}

// ParseNetwork accepts a bare network name.
func ParseNetwork(name string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := ledgerCodes[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}
	return n, nil
}

// NetworkFromChainID resolves "hedera:<network>" (or a bare network name).
// An empty chain id resolves to mainnet.
func NetworkFromChainID(chainID string) (Network, error) {
	value := strings.TrimSpace(chainID)
	if value == "" {
		return Mainnet, nil
	}
	if ns, ref, ok := strings.Cut(value, ":"); ok {
		if ns != ChainNamespace {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, chainID)
		}
		value = ref
	}
	return ParseNetwork(value)
}

// NormalizeChainID returns the canonical CAIP-2 form of chainID.
func NormalizeChainID(chainID string) (string, error) {
	n, err := NetworkFromChainID(chainID)
	if err != nil {
		return "", err
	}
	return n.ChainID(), nil
}
