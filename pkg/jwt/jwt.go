package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Token kinds carried in the "typ" claim
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the payload of both halves of a TokenPair. SessionID ties the
// token to the server-side session it was minted with.
type Claims struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	IsAnonymous bool      `json:"isAnonymous,omitempty"`
	SessionID   string    `json:"sid"`
	Kind        string    `json:"typ"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Subject identifies who a token pair is issued for
type Subject struct {
	UserID      uuid.UUID
	Email       string
	IsAnonymous bool
	SessionID   string
}

// Config controls signing. Issuer is optional; when set, tokens from any
// other issuer are rejected.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service mints and verifies HS256 tokens
type Service struct {
	secret []byte
	cfg    Config
}

var (
	signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
		return token.SignedString(secret)
	}
	timeNow = time.Now
)

func NewService(cfg Config) *Service {
	return &Service{secret: []byte(cfg.Secret), cfg: cfg}
}

// AccessTTL returns the lifetime of access tokens
func (s *Service) AccessTTL() time.Duration { return s.cfg.AccessTTL }

// Issue mints an access and a refresh token for sub
func (s *Service) Issue(sub Subject) (*TokenPair, error) {
	now := timeNow()
	access, err := s.sign(sub, KindAccess, now, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(sub, KindRefresh, now, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token. Refresh tokens are rejected.
func (s *Service) ParseAccess(raw string) (*Claims, error) {
	return s.parse(raw, KindAccess)
}

func (s *Service) parse(raw, kind string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(timeNow),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.UserID == uuid.Nil || claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(sub Subject, kind string, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:      sub.UserID,
		Email:       sub.Email,
		IsAnonymous: sub.IsAnonymous,
		SessionID:   sub.SessionID,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   sub.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return signJWTToken(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), s.secret)
}
