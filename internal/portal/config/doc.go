// Package config loads runtime configuration for the refund portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r string   base URL of the mail relay
//	-d string   path to the SQLite account database
//	-s int      authenticated session lifetime (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30m" or integer nanoseconds:
//
//	{
//	  "relay_endpoint": "http://127.0.0.1:8080",
//	  "relay_timeout": "10s",
//	  "company_email": "refunds@example.com",
//	  "database_path": "portal.db",
//	  "postgres_dsn": "",
//	  "redis_addr": "",
//	  "kdf_iterations": 100000,
//	  "password_min_length": 8,
//	  "code_ttl": "30m",
//	  "session_ttl": "30m",
//	  "session_secret": "change-me"
//	}
//
// When postgres_dsn is set the portal stores accounts in PostgreSQL instead
// of SQLite; when redis_addr is set verification codes live in Redis instead
// of process memory.
package config
