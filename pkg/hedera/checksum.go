package hedera

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// HIP-15 checksum parameters.
const (
	checksumLength = 5
	p3             = 26 * 26 * 26
	p5             = 26 * 26 * 26 * 26 * 26
	checksumWeight = 31
	// smallest prime above one million
	checksumPermutation = 1_000_003
	ledgerPadding       = "000000000000"
)

// ComputeChecksum returns the five-letter HIP-15 checksum of shard.realm.num
// for the ledger identified by ledgerCode (hex, e.g. "00" for mainnet).
func ComputeChecksum(ledgerCode string, shard, realm, num uint64) (string, error) {
	ledger, err := ledgerBytes(ledgerCode)
	if err != nil {
		return "", err
	}

	addr := strconv.FormatUint(shard, 10) + "." +
		strconv.FormatUint(realm, 10) + "." +
		strconv.FormatUint(num, 10)

	var sd0, sd1, sd int64
	for i := 0; i < len(addr); i++ {
		d := digitValue(addr[i])
		sd = (checksumWeight*sd + d) % p3
		if i%2 == 0 {
			sd0 = (sd0 + d) % 11
		} else {
			sd1 = (sd1 + d) % 11
		}
	}

	var sh int64
	for _, b := range ledger {
		sh = (checksumWeight*sh + int64(b)) % p5
	}

	c := ((((int64(len(addr))%5)*11+sd0)*11+sd1)*p3 + sd + sh) % p5
	cp := (c * checksumPermutation) % p5

	out := make([]byte, checksumLength)
	for i := checksumLength - 1; i >= 0; i-- {
		out[i] = byte('a' + cp%26)
		cp /= 26
	}
	return string(out), nil
}

func digitValue(ch byte) int64 {
	if ch == '.' {
		return 10
	}
	return int64(ch - '0')
}

func ledgerBytes(ledgerCode string) ([]byte, error) {
	padded := ledgerCode + ledgerPadding
	if len(padded)%2 != 0 {
		padded = "0" + padded
	}
	b, err := hex.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger code %q: %w", ledgerCode, err)
	}
	return b, nil
}
