package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

const sessionKeyPrefix = "session:"

var ErrSessionCorrupted = errors.New("session payload cannot be decrypted")

// SessionData is what a session token resolves to
type SessionData struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	IsAnonymous  bool      `json:"isAnonymous"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// SessionStore keeps sessions in Redis sealed with AES-256-GCM. The session
// id is bound as additional data, so a payload copied to another key fails
// to open.
type SessionStore struct {
	aead cipher.AEAD
}

var (
	setSessionValue    = Set
	getSessionValue    = Get
	delSessionValue    = Del
	marshalSessionJSON = json.Marshal
	nonceReader        = rand.Reader
)

// NewSessionStore creates a session store from a 64 hex char key
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SessionStore{aead: aead}, nil
}

// CreateSession seals data under sessionID for expiration
func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, expiration time.Duration) error {
	plaintext, err := marshalSessionJSON(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	sealed, err := s.seal(sessionID, plaintext)
	if err != nil {
		return err
	}

	return setSessionValue(ctx, sessionKeyPrefix+sessionID, sealed, expiration)
}

// GetSession loads and opens the session stored under sessionID. A missing
// key returns redis.Nil unchanged.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	sealed, err := getSessionValue(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.open(sessionID, sealed)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupted, err)
	}
	return &data, nil
}

// DeleteSession removes a session
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKeyPrefix+sessionID)
}

func (s *SessionStore) seal(sessionID string, plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(nonceReader, nonce); err != nil {
		return "", fmt.Errorf("session nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, []byte(sessionID))
	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

func (s *SessionStore) open(sessionID, encoded string) ([]byte, error) {
	sealed, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil || len(sealed) < s.aead.NonceSize() {
		return nil, ErrSessionCorrupted
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(sessionID))
	if err != nil {
		return nil, ErrSessionCorrupted
	}
	return plaintext, nil
}
