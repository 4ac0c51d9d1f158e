package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/refundport/internal/common"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// relayRequest is the JSON body expected by the relay's send-email endpoint.
type relayRequest struct {
	ToEmail     string `json:"toEmail"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RelayClient is a Gateway that posts messages to the mail-relay service.
type RelayClient struct {
	endpoint string
	client   *http.Client
}

// NewRelayClient constructs a RelayClient for the relay base URL (e.g.
// "http://localhost:3001"). A non-positive timeout falls back to
// DefaultTimeout.
func NewRelayClient(endpoint string, timeout time.Duration) *RelayClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RelayClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Deliver posts the message to the relay and interprets its JSON outcome.
// Any transport error, non-2xx status, or success=false response surfaces as
// common.ErrDeliveryFailed.
func (c *RelayClient) Deliver(ctx context.Context, destination, subject, htmlBody string) error {
	body, err := json.Marshal(relayRequest{
		ToEmail:     common.NormalizeEmail(destination),
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", common.ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/api/send-email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", common.ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	var out relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decode response: %w", common.ErrDeliveryFailed, err)
	}

	if resp.StatusCode != http.StatusOK || !out.Success {
		return fmt.Errorf("%w: relay status %d: %s", common.ErrDeliveryFailed, resp.StatusCode, out.Message)
	}
	return nil
}
