package blockchain

import (
	"fmt"
	"sync"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
)

// ClientFactory hands out one MirrorClient per network
type ClientFactory struct {
	urls    map[hedera.Network]string
	timeout time.Duration
	clients map[hedera.Network]*MirrorClient
	mu      sync.RWMutex
}

// NewClientFactory creates a factory. Networks missing from urls fall back
// to DefaultMirrorURLs; devnet has no public default.
func NewClientFactory(urls map[hedera.Network]string, timeout time.Duration) *ClientFactory {
	merged := make(map[hedera.Network]string, len(DefaultMirrorURLs))
	for n, u := range DefaultMirrorURLs {
		merged[n] = u
	}
	for n, u := range urls {
		if u != "" {
			merged[n] = u
		}
	}
	return &ClientFactory{
		urls:    merged,
		timeout: timeout,
		clients: make(map[hedera.Network]*MirrorClient),
	}
}

// GetMirrorClient returns the cached client for network
func (f *ClientFactory) GetMirrorClient(network hedera.Network) (*MirrorClient, error) {
	f.mu.RLock()
	client, ok := f.clients[network]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[network]; ok {
		return client, nil
	}

	baseURL, ok := f.urls[network]
	if !ok {
		return nil, fmt.Errorf("no mirror node configured for %s", network)
	}

	client = NewMirrorClient(baseURL, f.timeout)
	f.clients[network] = client
	return client, nil
}
