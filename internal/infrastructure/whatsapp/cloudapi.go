// Package whatsapp sends client messages through the WhatsApp Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/frigoservis/servis/internal/infrastructure/sms"
	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
)

// CloudSender authenticates with a long-lived system user token carried by
// an oauth2 static token source.
type CloudSender struct {
	endpoint   string
	httpClient *http.Client
}

func NewCloudSender(config sharedConfig.WhatsAppConfig) *CloudSender {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: config.AccessToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = timeout

	return &CloudSender{
		endpoint:   fmt.Sprintf("%s/%s/messages", strings.TrimRight(config.APIBaseURL, "/"), config.PhoneNumberID),
		httpClient: client,
	}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type messageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send posts a plain text message. The Cloud API expects the number without "+".
func (s *CloudSender) Send(ctx context.Context, to, _ string, body string) (string, error) {
	number, err := sms.NormalizePhone(to)
	if err != nil {
		return "", err
	}

	msg := textMessage{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(number, "+"),
		Type:             "text",
	}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode whatsapp message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read whatsapp response: %w", err)
	}

	var out messageResponse
	if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("failed to decode whatsapp response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Error != nil {
			return "", fmt.Errorf("whatsapp api returned %d: %s (code %d)", resp.StatusCode, out.Error.Message, out.Error.Code)
		}
		return "", fmt.Errorf("whatsapp api returned %d", resp.StatusCode)
	}
	if len(out.Messages) == 0 {
		return "", fmt.Errorf("whatsapp api accepted the request but returned no message id")
	}
	return out.Messages[0].ID, nil
}
