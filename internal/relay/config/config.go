// Package config handles configuration for the mail relay component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the mail relay.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - SenderEmail / SenderName: the From identity on outgoing mail.
//   - APIURL / APIKey: transactional-mail HTTP provider; when APIKey is set
//     the relay submits through the provider API.
//   - SMTPHost / SMTPPort / SMTPUser / SMTPPassword: SMTP fallback used when
//     no provider API key is configured.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddr    string
	SenderEmail     string
	SenderName      string
	APIURL          string
	APIKey          string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SenderEmail = "no-reply@localhost"
	c.SenderName = "Tax Portal Support"
	c.APIURL = "https://api.brevo.com/v3/smtp/email"
	c.SMTPHost = "127.0.0.1"
	c.SMTPPort = 25
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
