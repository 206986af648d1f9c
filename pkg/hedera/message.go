package hedera

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const messageHeaderSuffix = " wants you to sign in with your Hedera account:"

var ErrInvalidMessage = errors.New("invalid sign-in message")

// SignInMessage is a CAIP-122 message for a Hedera account.
type SignInMessage struct {
	Domain         string
	Address        string
	Statement      string
	URI            string
	Version        string
	ChainID        string
	Nonce          string
	IssuedAt       time.Time
	ExpirationTime *time.Time
	NotBefore      *time.Time
	RequestID      string
}

// String renders the message in the layout wallets display and sign.
func (m *SignInMessage) String() string {
	var b strings.Builder
	b.WriteString(m.Domain + messageHeaderSuffix + "\n")
	b.WriteString(m.Address + "\n\n")
	if m.Statement != "" {
		b.WriteString(m.Statement + "\n\n")
	}
	fmt.Fprintf(&b, "URI: %s\n", m.URI)
	fmt.Fprintf(&b, "Version: %s\n", m.Version)
	fmt.Fprintf(&b, "Chain ID: %s\n", m.ChainID)
	fmt.Fprintf(&b, "Nonce: %s\n", m.Nonce)
	fmt.Fprintf(&b, "Issued At: %s", m.IssuedAt.UTC().Format(time.RFC3339))
	if m.ExpirationTime != nil {
		fmt.Fprintf(&b, "\nExpiration Time: %s", m.ExpirationTime.UTC().Format(time.RFC3339))
	}
	if m.NotBefore != nil {
		fmt.Fprintf(&b, "\nNot Before: %s", m.NotBefore.UTC().Format(time.RFC3339))
	}
	if m.RequestID != "" {
		fmt.Fprintf(&b, "\nRequest ID: %s", m.RequestID)
	}
	return b.String()
}

// ParseSignInMessage parses a message produced by String (or a wallet using the same layout).
func ParseSignInMessage(raw string) (*SignInMessage, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) < 2 || !strings.HasSuffix(lines[0], messageHeaderSuffix) {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidMessage)
	}

	msg := &SignInMessage{
		Domain:  strings.TrimSuffix(lines[0], messageHeaderSuffix),
		Address: strings.TrimSpace(lines[1]),
	}
	if msg.Domain == "" || msg.Address == "" {
		return nil, fmt.Errorf("%w: missing domain or address", ErrInvalidMessage)
	}

	var statement []string
	for _, line := range lines[2:] {
		key, value, isField := strings.Cut(line, ": ")
		if !isField {
			if strings.TrimSpace(line) != "" {
				statement = append(statement, line)
			}
			continue
		}

		var err error
		switch key {
		case "URI":
			msg.URI = value
		case "Version":
			msg.Version = value
		case "Chain ID":
			msg.ChainID = value
		case "Nonce":
			msg.Nonce = value
		case "Issued At":
			msg.IssuedAt, err = time.Parse(time.RFC3339, value)
		case "Expiration Time":
			msg.ExpirationTime, err = parseOptionalTime(value)
		case "Not Before":
			msg.NotBefore, err = parseOptionalTime(value)
		case "Request ID":
			msg.RequestID = value
		default:
			statement = append(statement, line)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMessage, key, err)
		}
	}
	msg.Statement = strings.Join(statement, "\n")

	if msg.Nonce == "" || msg.Version == "" {
		return nil, fmt.Errorf("%w: missing nonce or version", ErrInvalidMessage)
	}
	return msg, nil
}

func parseOptionalTime(value string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
