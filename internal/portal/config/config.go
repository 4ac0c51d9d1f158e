package config

import "time"

// Config holds runtime settings for the refund portal CLI.
type Config struct {
	// RelayEndpoint is the base URL of the mail relay service.
	RelayEndpoint string
	// RelayTimeout bounds a single delivery request to the relay.
	RelayTimeout time.Duration
	// CompanyEmail receives submitted refund applications.
	CompanyEmail string

	// DatabasePath is the SQLite file holding encrypted accounts.
	DatabasePath string
	// PostgresDSN, when non-empty, selects PostgreSQL over SQLite.
	PostgresDSN string
	// RedisAddr, when non-empty, stores verification codes in Redis
	// instead of process memory.
	RedisAddr string

	// KDFIterations is the PBKDF2 iteration count for key derivation.
	KDFIterations int
	// SaltBytes and IVBytes size the random salt and GCM nonce.
	SaltBytes int
	IVBytes   int

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength int

	// CodeLength is the number of digits in a verification code.
	CodeLength int
	// CodeTTL is how long an issued code stays redeemable.
	CodeTTL time.Duration

	// SessionTTL bounds an authenticated session.
	SessionTTL time.Duration
	// SessionSecret signs session tokens.
	SessionSecret string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RelayEndpoint = "http://127.0.0.1:8080"
	c.RelayTimeout = 10 * time.Second
	c.CompanyEmail = "refunds@localhost"
	c.DatabasePath = "portal.db"
	c.KDFIterations = 100000
	c.SaltBytes = 16
	c.IVBytes = 12
	c.PasswordMinLength = 8
	c.CodeLength = 6
	c.CodeTTL = 30 * time.Minute
	c.SessionTTL = 30 * time.Minute
	c.SessionSecret = "change-me"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
