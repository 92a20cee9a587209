package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/domain"
)

// BrevoSender delivers mail through the Brevo transactional HTTP API.
type BrevoSender struct {
	apiKey   string
	baseURL  string
	envelope envelope
	client   *http.Client
}

// NewBrevoSender creates a Brevo API sender from the application configuration
func NewBrevoSender(cfg *config.Config) *BrevoSender {
	return &BrevoSender{
		apiKey:   cfg.BrevoAPIKey,
		baseURL:  cfg.BrevoBaseURL,
		envelope: newEnvelope(cfg),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *BrevoSender) Provider() string { return "brevo" }

func (s *BrevoSender) IsConfigured() bool {
	return s.apiKey != "" && s.baseURL != "" && s.envelope.complete()
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (s *BrevoSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	if !s.IsConfigured() {
		return fmt.Errorf("brevo: %w", domain.ErrChannelNotConfigured)
	}

	payload := brevoRequest{
		Sender:      brevoContact{Name: s.envelope.from.Name, Email: s.envelope.from.Address},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
	}
	for _, rcpt := range s.envelope.recipients {
		payload.To = append(payload.To, brevoContact{Email: rcpt})
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v3/smtp/email", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("brevo: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("brevo: non-2xx: %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
