package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/refundport/internal/flagx"
	"github.com/dmitrijs2005/refundport/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	SenderEmail     string         `json:"sender_email"`
	SenderName      string         `json:"sender_name"`
	APIURL          string         `json:"api_url"`
	APIKey          string         `json:"api_key"`
	SMTPHost        string         `json:"smtp_host"`
	SMTPPort        int            `json:"smtp_port"`
	SMTPUser        string         `json:"smtp_user"`
	SMTPPassword    string         `json:"smtp_password"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c / -config flags. A missing path means no overlay. Only non-zero
// fields override the defaults. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
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

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.SenderEmail != "" {
		cfg.SenderEmail = jc.SenderEmail
	}
	if jc.SenderName != "" {
		cfg.SenderName = jc.SenderName
	}
	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	cfg.APIKey = jc.APIKey
	if jc.SMTPHost != "" {
		cfg.SMTPHost = jc.SMTPHost
	}
	if jc.SMTPPort > 0 {
		cfg.SMTPPort = jc.SMTPPort
	}
	cfg.SMTPUser = jc.SMTPUser
	cfg.SMTPPassword = jc.SMTPPassword
	if jc.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = time.Duration(jc.ShutdownTimeout.Duration)
	}
}
