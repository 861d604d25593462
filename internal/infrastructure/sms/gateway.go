// Package sms sends client SMS through an HTTP gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
)

// GatewaySender posts one JSON message per SMS. Only 2xx responses count as sent.
type GatewaySender struct {
	config     sharedConfig.SMSConfig
	httpClient *http.Client
}

func NewGatewaySender(config sharedConfig.SMSConfig) *GatewaySender {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewaySender{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// Send delivers body to the phone number to. The subject is not used by SMS.
func (s *GatewaySender) Send(ctx context.Context, to, _ string, body string) (string, error) {
	number, err := NormalizePhone(to)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(sendRequest{
		To:   number,
		From: s.config.SenderID,
		Text: FoldDiacritics(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode sms: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read sms gateway response: %w", err)
	}

	var out sendResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := out.Error
		if reason == "" {
			reason = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, reason)
	}
	return out.MessageID, nil
}
