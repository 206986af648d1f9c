package blockchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/stretchr/testify/require"
)

func newMirrorServer(t *testing.T, accounts map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/api/v1/accounts/"
		if len(r.URL.Path) <= len(prefix) || r.URL.Path[:len(prefix)] != prefix {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, ok := accounts[r.URL.Path[len(prefix):]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"_status":{"messages":[{"message":"Not found"}]}}`))
			return
		}
		if body == "" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMirrorClient_GetAccountKey(t *testing.T) {
	srv := newMirrorServer(t, map[string]string{
		"0.0.1001": `{"account":"0.0.1001","key":{"_type":"ED25519","key":"abcd"}}`,
		"0.0.1002": `{"account":"0.0.1002","key":null}`,
		"0.0.1003": `{not json`,
		"0.0.1004": "",
	})
	client := NewMirrorClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	key, err := client.GetAccountKey(ctx, "0.0.1001")
	require.NoError(t, err)
	require.Equal(t, KeyTypeED25519, key.Type)
	require.Equal(t, "abcd", key.Key)

	_, err = client.GetAccountKey(ctx, "0.0.9")
	require.ErrorIs(t, err, ErrAccountNotFound)

	_, err = client.GetAccountKey(ctx, "0.0.1002")
	require.ErrorContains(t, err, "has no key")

	_, err = client.GetAccountKey(ctx, "0.0.1003")
	require.ErrorContains(t, err, "decode mirror node response")

	_, err = client.GetAccountKey(ctx, "0.0.1004")
	require.ErrorContains(t, err, "status 503")
}

func TestMirrorClient_TransportError(t *testing.T) {
	client := NewMirrorClient("http://127.0.0.1:0", 50*time.Millisecond)
	_, err := client.GetAccountKey(context.Background(), "0.0.1")
	require.ErrorContains(t, err, "mirror node request failed")
}

func TestClientFactory_CachesPerNetwork(t *testing.T) {
	f := NewClientFactory(map[hedera.Network]string{hedera.Devnet: "http://devnet.local"}, time.Second)

	main1, err := f.GetMirrorClient(hedera.Mainnet)
	require.NoError(t, err)
	main2, err := f.GetMirrorClient(hedera.Mainnet)
	require.NoError(t, err)
	require.Same(t, main1, main2)
	require.Equal(t, DefaultMirrorURLs[hedera.Mainnet], main1.baseURL)

	dev, err := f.GetMirrorClient(hedera.Devnet)
	require.NoError(t, err)
	require.Equal(t, "http://devnet.local", dev.baseURL)

	_, err = NewClientFactory(nil, time.Second).GetMirrorClient(hedera.Devnet)
	require.Error(t, err)
}
