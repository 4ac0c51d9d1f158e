package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.RelayEndpoint)
	assert.Equal(t, 10*time.Second, c.RelayTimeout)
	assert.Equal(t, "portal.db", c.DatabasePath)
	assert.Equal(t, 100000, c.KDFIterations)
	assert.Equal(t, 16, c.SaltBytes)
	assert.Equal(t, 12, c.IVBytes)
	assert.Equal(t, 8, c.PasswordMinLength)
	assert.Equal(t, 6, c.CodeLength)
	assert.Equal(t, 30*time.Minute, c.CodeTTL)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Empty(t, c.PostgresDSN)
	assert.Empty(t, c.RedisAddr)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.RelayEndpoint)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
