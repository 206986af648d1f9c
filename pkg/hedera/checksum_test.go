package hedera

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checksumFixtures = []struct {
	network  Network
	address  string
	checksum string
}{
	// HIP-15 reference vectors
	{Mainnet, "0.0.123", "vfmkw"},
	{Testnet, "0.0.123", "esxsf"},
	{Previewnet, "0.0.123", "ogizo"},

	{Mainnet, "0.0.9167913", "tlrnu"},
	{Testnet, "0.0.9167913", "czcvd"},
	{Previewnet, "0.0.9167913", "mmocm"},
	{Mainnet, "0.0.0", "uvnqa"},
	{Mainnet, "0.0.1", "dfkxr"},
	{Testnet, "0.0.1", "mswfa"},
	{Previewnet, "0.0.1", "wghmj"},
	{Mainnet, "0.0.98", "oljor"},
	{Testnet, "0.0.98", "xyuwa"},
	{Mainnet, "0.0.1001", "urkbk"},
	{Previewnet, "0.0.1001", "nsgqc"},
	{Mainnet, "1.2.3", "islfi"},
	{Testnet, "1.2.3", "sfwmr"},
	{Previewnet, "1.2.3", "bthua"},
	{Mainnet, "12.345.6789", "aoyyt"},
	{Testnet, "12.345.6789", "kckgc"},
	{Previewnet, "12.345.6789", "tpvnl"},
	// devnet shares testnet's ledger id
	{Devnet, "0.0.123", "esxsf"},
	{Devnet, "0.0.9167913", "czcvd"},
}

func TestComputeChecksum_Fixtures(t *testing.T) {
	for _, tc := range checksumFixtures {
		t.Run(fmt.Sprintf("%s/%s", tc.network, tc.address), func(t *testing.T) {
			id, err := ParseAccountID(tc.address)
			require.NoError(t, err)

			code, ok := tc.network.LedgerCode()
			require.True(t, ok)

			got, err := ComputeChecksum(code, id.Shard, id.Realm, id.Num)
			require.NoError(t, err)
			assert.Equal(t, tc.checksum, got)
		})
	}
}

func TestComputeChecksum_Deterministic(t *testing.T) {
	first, err := ComputeChecksum("00", 0, 0, 9167913)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := ComputeChecksum("00", 0, 0, 9167913)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestComputeChecksum_OutputShape(t *testing.T) {
	nums := []uint64{0, 1, 9, 10, 99, 100, 12345, 9167913, 1<<32 + 7, ^uint64(0)}
	for _, n := range nums {
		got, err := ComputeChecksum("02", 0, 0, n)
		require.NoError(t, err)
		require.Len(t, got, 5)
		for _, ch := range got {
			assert.True(t, ch >= 'a' && ch <= 'z', "unexpected rune %q in %q", ch, got)
		}
	}
}

func TestComputeChecksum_NetworkChangesResult(t *testing.T) {
	main, err := ComputeChecksum("00", 0, 0, 123)
	require.NoError(t, err)
	test, err := ComputeChecksum("01", 0, 0, 123)
	require.NoError(t, err)
	assert.NotEqual(t, main, test)
}

func TestComputeChecksum_InvalidLedgerCode(t *testing.T) {
	_, err := ComputeChecksum("zz", 0, 0, 1)
	assert.Error(t, err)
}

func TestComputeChecksum_OddLengthLedgerCodeIsPadded(t *testing.T) {
	odd, err := ComputeChecksum("0", 0, 0, 123)
	require.NoError(t, err)
	even, err := ComputeChecksum("00", 0, 0, 123)
	require.NoError(t, err)
	assert.Equal(t, even, odd)
}
