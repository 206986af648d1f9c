package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

var randomRead = rand.Read

// RandomHex returns n random bytes hex encoded
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := randomRead(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewNonce returns a 32 hex char sign-in nonce
func NewNonce() (string, error) { return RandomHex(16) }

// NewVerificationToken returns a 32 hex char email verification token
func NewVerificationToken() (string, error) { return RandomHex(16) }

// NewSessionToken returns a 64 hex char opaque session token
func NewSessionToken() (string, error) { return RandomHex(32) }
