package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays configured fields", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr":    ":9090",
			"sender_email":     "support@example.com",
			"api_key":          "k3y",
			"smtp_host":        "smtp.sendgrid.net",
			"smtp_port":        587,
			"smtp_user":        "apikey",
			"shutdown_timeout": "5s",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":9090", cfg.EndpointAddr)
		assert.Equal(t, "support@example.com", cfg.SenderEmail)
		assert.Equal(t, "k3y", cfg.APIKey)
		assert.Equal(t, "smtp.sendgrid.net", cfg.SMTPHost)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "apikey", cfg.SMTPUser)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("no config flag leaves defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":8080", cfg.EndpointAddr)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
