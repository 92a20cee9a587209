package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/domain"
)

// SMTPSender delivers mail through an authenticated SMTP relay (Outlook by
// default).
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	envelope envelope
	now      func() time.Time
}

// NewSMTPSender creates an SMTP sender from the application configuration
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		envelope: newEnvelope(cfg),
		now:      time.Now,
	}
}

func (s *SMTPSender) Provider() string { return "smtp" }

// IsConfigured checks if the sender has a relay, credentials and recipients
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.envelope.complete()
}

// Send dials the relay under ctx, upgrades to TLS when offered and submits msg
// to every recipient.
func (s *SMTPSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	if !s.IsConfigured() {
		return fmt.Errorf("smtp: %w", domain.ErrChannelNotConfigured)
	}

	body, err := buildMIME(s.envelope, msg, s.now())
	if err != nil {
		return err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		return fmt.Errorf("smtp: failed to connect: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: handshake failed: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("smtp: starttls failed: %w", err)
		}
	}

	if ok, mechanisms := client.Extension("AUTH"); ok {
		if err := client.Auth(s.auth(mechanisms)); err != nil {
			return fmt.Errorf("smtp: authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.envelope.from.Address); err != nil {
		return fmt.Errorf("smtp: MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range s.envelope.recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: DATA rejected: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("smtp: failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: message rejected: %w", err)
	}

	// The message is accepted at this point; a failed QUIT does not undo it.
	_ = client.Quit()
	return nil
}

// auth prefers PLAIN and falls back to LOGIN, which Outlook advertises alone.
func (s *SMTPSender) auth(mechanisms string) smtp.Auth {
	for _, m := range strings.Fields(mechanisms) {
		if strings.EqualFold(m, "PLAIN") {
			return smtp.PlainAuth("", s.username, s.password, s.host)
		}
	}
	return &loginAuth{username: s.username, password: s.password}
}

type loginAuth struct {
	username, password string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS {
		return "", nil, errors.New("unencrypted connection")
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSuffix(string(fromServer), ":")) {
	case "username":
		return []byte(a.username), nil
	case "password":
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected LOGIN challenge %q", fromServer)
	}
}
