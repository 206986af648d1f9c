package hedera

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidAddressFormat = errors.New("invalid hedera account id format")

// shard.realm.num with an optional -abcde checksum; no leading zeros
var accountIDPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(?:-([a-z]{5}))?$`)

// AccountID is a parsed Hedera account identifier.
type AccountID struct {
	Shard    uint64
	Realm    uint64
	Num      uint64
	Checksum string // empty when the input carried none
}

// ParseAccountID parses "shard.realm.num" with an optional "-checksum" suffix.
func ParseAccountID(raw string) (AccountID, error) {
	m := accountIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return AccountID{}, fmt.Errorf("%w: %q", ErrInvalidAddressFormat, raw)
	}

	var parts [3]uint64
	for i := range parts {
		v, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return AccountID{}, fmt.Errorf("%w: %q", ErrInvalidAddressFormat, raw)
		}
		parts[i] = v
	}

	return AccountID{
		Shard:    parts[0],
		Realm:    parts[1],
		Num:      parts[2],
		Checksum: m[4],
	}, nil
}

// String returns the canonical form without checksum.
func (a AccountID) String() string {
	return strconv.FormatUint(a.Shard, 10) + "." +
		strconv.FormatUint(a.Realm, 10) + "." +
		strconv.FormatUint(a.Num, 10)
}

// StringWithChecksum returns the canonical form with the checksum for network.
func (a AccountID) StringWithChecksum(network Network) (string, error) {
	code, ok := network.LedgerCode()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}
	checksum, err := ComputeChecksum(code, a.Shard, a.Realm, a.Num)
	if err != nil {
		return "", err
	}
	return a.String() + "-" + checksum, nil
}

// SameAccount reports whether both ids name the same shard.realm.num.
func (a AccountID) SameAccount(b AccountID) bool {
	return a.Shard == b.Shard && a.Realm == b.Realm && a.Num == b.Num
}
