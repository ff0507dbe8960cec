package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xo-club/storefront-api/internal/resilience"
)

// DefaultResendBaseURL is the production Resend API endpoint.
const DefaultResendBaseURL = "https://api.resend.com"

// NewResendHTTPClient returns the resilient client used for Resend calls:
// short per-attempt timeout, a few retries on 5xx/429 and a breaker so a
// provider outage does not pile up worker goroutines.
func NewResendHTTPClient() resilience.HTTPClient {
	return resilience.HTTPClient{
		Client:      &http.Client{Timeout: 15 * time.Second},
		Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("resend"),
		BaseBackoff: 500 * time.Millisecond,
		MaxAttempts: 3,
		Jitter:      0.2,
		Timeout:     10 * time.Second,
	}
}

// ResendMailer sends transactional email through the Resend HTTP API. It
// implements common.EmailSender.
type ResendMailer struct {
	APIKey  string
	From    string
	BaseURL string
	Client  resilience.HTTPClient
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type resendError struct {
	Message string `json:"message"`
}

// Send posts a single email. Non-2xx responses are returned as errors with
// the message Resend reported.
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	if strings.TrimSpace(m.APIKey) == "" {
		return fmt.Errorf("resend: api key not configured")
	}
	body, err := json.Marshal(resendRequest{
		From:    m.From,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: encode request: %w", err)
	}

	base := m.BaseURL
	if base == "" {
		base = DefaultResendBaseURL
	}
	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(base, "/")+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := m.Client
	if client.Client == nil {
		client = NewResendHTTPClient()
	}
	resp, err := client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr resendError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("resend: %s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
}
