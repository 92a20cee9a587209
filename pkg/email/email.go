package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/domain"
)

// Sender is an email provider that can report whether it has credentials.
type Sender interface {
	domain.EmailSender
	IsConfigured() bool
	Provider() string
}

// NewSender picks the provider named by cfg.EmailProvider. Unknown names fall
// back to SMTP.
func NewSender(cfg *config.Config) Sender {
	switch cfg.EmailProvider {
	case "brevo":
		return NewBrevoSender(cfg)
	default:
		return NewSMTPSender(cfg)
	}
}

// envelope is the identity shared by all providers.
type envelope struct {
	from       mail.Address
	recipients []string
}

func newEnvelope(cfg *config.Config) envelope {
	return envelope{
		from:       mail.Address{Name: cfg.EmailFromName, Address: cfg.EmailFrom},
		recipients: append([]string(nil), cfg.EmailRecipients...),
	}
}

func (e envelope) complete() bool {
	return e.from.Address != "" && len(e.recipients) > 0
}

// buildMIME renders a text/html message with RFC 2047 encoded headers and a
// quoted-printable body.
func buildMIME(env envelope, msg domain.EmailMessage, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	headers := []struct{ key, value string }{
		{"From", env.from.String()},
		{"To", strings.Join(env.recipients, ", ")},
		{"Subject", mime.QEncoding.Encode("UTF-8", msg.Subject)},
		{"Date", now.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
		{"Content-Transfer-Encoding", "quoted-printable"},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}
	return buf.Bytes(), nil
}
