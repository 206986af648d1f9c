package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Siwh     SiwhConfig
	Mirror   MirrorConfig
	Mail     MailConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string   `env:"SERVER_PORT" envDefault:"8080"`
	Env            string   `env:"SERVER_ENV" envDefault:"development"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"siwh"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string        `env:"JWT_SECRET" envDefault:"change-this-in-production"`
	Issuer        string        `env:"JWT_ISSUER"`
	AccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" envDefault:"168h"`
}

// SecurityConfig holds session settings
type SecurityConfig struct {
	SessionEncryptionKey string        `env:"SESSION_ENCRYPTION_KEY" envDefault:"0000000000000000000000000000000000000000000000000000000000000000"` // 32-bytes hex string
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName           string        `env:"SESSION_COOKIE_NAME" envDefault:"siwh.session_token"`
	CookieDomain         string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure         bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Challenge store backends
const (
	ChallengeStoreRedis    = "redis"
	ChallengeStoreDatabase = "database"
)

// SiwhConfig holds the Sign-In With Hedera options
type SiwhConfig struct {
	Domain                string        `env:"SIWH_DOMAIN" envDefault:"localhost:3000"`
	BaseURL               string        `env:"SIWH_BASE_URL" envDefault:"http://localhost:3000"`
	EmailDomain           string        `env:"SIWH_EMAIL_DOMAIN"`
	Anonymous             bool          `env:"SIWH_ANONYMOUS" envDefault:"true"`
	AutoSignUp            bool          `env:"SIWH_AUTO_SIGN_UP" envDefault:"true"`
	AllowUnlinkingAll     bool          `env:"SIWH_ALLOW_UNLINKING_ALL" envDefault:"false"`
	SendVerificationEmail bool          `env:"SIWH_SEND_VERIFICATION_EMAIL" envDefault:"false"`
	NonceTTL              time.Duration `env:"SIWH_NONCE_TTL" envDefault:"15m"`
	ChallengeStore        string        `env:"SIWH_CHALLENGE_STORE" envDefault:"redis"`
	VerifierAddressForm   string        `env:"SIWH_VERIFIER_ADDRESS_FORM" envDefault:"canonical"`
}

// MirrorConfig overrides the public mirror node endpoints
type MirrorConfig struct {
	MainnetURL    string        `env:"MIRROR_MAINNET_URL"`
	TestnetURL    string        `env:"MIRROR_TESTNET_URL"`
	PreviewnetURL string        `env:"MIRROR_PREVIEWNET_URL"`
	DevnetURL     string        `env:"MIRROR_DEVNET_URL"`
	Timeout       time.Duration `env:"MIRROR_TIMEOUT" envDefault:"10s"`
}

// URLs returns the configured endpoints keyed by network. Empty entries are
// left out so the public defaults apply.
func (c MirrorConfig) URLs() map[hedera.Network]string {
	urls := make(map[hedera.Network]string)
	for network, url := range map[hedera.Network]string{
		hedera.Mainnet:    c.MainnetURL,
		hedera.Testnet:    c.TestnetURL,
		hedera.Previewnet: c.PreviewnetURL,
		hedera.Devnet:     c.DevnetURL,
	} {
		if url != "" {
			urls[network] = url
		}
	}
	return urls
}

// MailConfig holds SMTP settings
type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Enabled reports whether an SMTP server is configured
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Siwh.ChallengeStore {
	case ChallengeStoreRedis, ChallengeStoreDatabase:
	default:
		return fmt.Errorf("SIWH_CHALLENGE_STORE must be %q or %q, got %q", ChallengeStoreRedis, ChallengeStoreDatabase, c.Siwh.ChallengeStore)
	}
	switch c.Siwh.VerifierAddressForm {
	case "canonical", "checksummed", "raw":
	default:
		return fmt.Errorf("SIWH_VERIFIER_ADDRESS_FORM must be canonical, checksummed or raw, got %q", c.Siwh.VerifierAddressForm)
	}
	if c.Siwh.NonceTTL <= 0 {
		return fmt.Errorf("SIWH_NONCE_TTL must be positive")
	}
	if c.Siwh.SendVerificationEmail && !c.Mail.Enabled() {
		return fmt.Errorf("SIWH_SEND_VERIFICATION_EMAIL requires SMTP_HOST")
	}
	return nil
}
