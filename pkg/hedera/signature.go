package hedera

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidSignatureEncoding = errors.New("invalid signature encoding")

// EncodeSignature encodes raw signature bytes for transport (standard base64, padded).
func EncodeSignature(sig []byte) string {
	return base64.StdEncoding.EncodeToString(sig)
}

// DecodeSignature decodes a transported signature. Browsers and mobile
// wallets disagree on alphabet and padding, so all four variants are accepted.
func DecodeSignature(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if s == "" {
		return nil, ErrInvalidSignatureEncoding
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, ErrInvalidSignatureEncoding
}

const signedMessagePrefix = "\x19Hedera Signed Message:\n"

// SignedMessagePayload returns the bytes a Hedera wallet signs for a
// personal message: the prefix, the decimal byte length, then the message.
func SignedMessagePayload(message string) []byte {
	return []byte(signedMessagePrefix + strconv.Itoa(len(message)) + message)
}
