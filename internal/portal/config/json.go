package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/refundport/internal/flagx"
	"github.com/dmitrijs2005/refundport/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	RelayEndpoint     string         `json:"relay_endpoint"`
	RelayTimeout      timex.Duration `json:"relay_timeout"`
	CompanyEmail      string         `json:"company_email"`
	DatabasePath      string         `json:"database_path"`
	PostgresDSN       string         `json:"postgres_dsn"`
	RedisAddr         string         `json:"redis_addr"`
	KDFIterations     int            `json:"kdf_iterations"`
	SaltBytes         int            `json:"salt_bytes"`
	IVBytes           int            `json:"iv_bytes"`
	PasswordMinLength int            `json:"password_min_length"`
	CodeLength        int            `json:"code_length"`
	CodeTTL           timex.Duration `json:"code_ttl"`
	SessionTTL        timex.Duration `json:"session_ttl"`
	SessionSecret     string         `json:"session_secret"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present with non-zero values override the defaults, so a
// partial JSON file is valid. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RelayEndpoint != "" {
		cfg.RelayEndpoint = jc.RelayEndpoint
	}
	if jc.RelayTimeout.Duration > 0 {
		cfg.RelayTimeout = time.Duration(jc.RelayTimeout.Duration)
	}
	if jc.CompanyEmail != "" {
		cfg.CompanyEmail = jc.CompanyEmail
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	cfg.PostgresDSN = jc.PostgresDSN
	cfg.RedisAddr = jc.RedisAddr
	if jc.KDFIterations > 0 {
		cfg.KDFIterations = jc.KDFIterations
	}
	if jc.SaltBytes > 0 {
		cfg.SaltBytes = jc.SaltBytes
	}
	if jc.IVBytes > 0 {
		cfg.IVBytes = jc.IVBytes
	}
	if jc.PasswordMinLength > 0 {
		cfg.PasswordMinLength = jc.PasswordMinLength
	}
	if jc.CodeLength > 0 {
		cfg.CodeLength = jc.CodeLength
	}
	if jc.CodeTTL.Duration > 0 {
		cfg.CodeTTL = time.Duration(jc.CodeTTL.Duration)
	}
	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = time.Duration(jc.SessionTTL.Duration)
	}
	if jc.SessionSecret != "" {
		cfg.SessionSecret = jc.SessionSecret
	}
}
