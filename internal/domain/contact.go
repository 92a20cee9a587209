package domain

import (
	"context"
	"errors"
	"fmt"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// DispatchOutcome is the per-channel and overall result of one submission.
type DispatchOutcome struct {
	EmailSent      bool `json:"emailSent"`
	ChatSent       bool `json:"telegramSent"`
	OverallSuccess bool `json:"-"`
}

// EmailMessage is a fully rendered email. Sender and recipients belong to the
// configured EmailSender.
type EmailMessage struct {
	Subject  string
	HTMLBody string
}

// Channel names used in logs and DeliveryError.
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

var (
	// ErrValidation marks a submission that is missing a required field.
	ErrValidation = errors.New("name and phone are required")
	// ErrDeliveryFailed is returned when no channel confirmed delivery.
	ErrDeliveryFailed = errors.New("no notification channel delivered the submission")
	// ErrChannelNotConfigured is returned by adapters lacking credentials.
	ErrChannelNotConfigured = errors.New("channel is not configured")
)

// DeliveryError wraps a failure of a single channel.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// EmailSender delivers a rendered email to the configured recipients.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// ChatNotifier posts a formatted message to the configured chat.
type ChatNotifier interface {
	Notify(ctx context.Context, text string) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates the submission and fans it out to every channel.
	// It returns ErrValidation (wrapped) before any delivery is attempted, and
	// ErrDeliveryFailed together with the outcome when every channel failed.
	SubmitContact(ctx context.Context, req *ContactRequest) (DispatchOutcome, error)
}
