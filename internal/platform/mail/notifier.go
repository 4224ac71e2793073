package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
)

// SMTPNotifier delivers messages through an SMTP relay configured via
// environment variables.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPNotifier builds a notifier from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASSWORD and MAIL_FROM. It returns an error when SMTP_HOST is unset;
// callers fall back to the LogNotifier in that case.
func NewSMTPNotifier() (*SMTPNotifier, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@studyhub.local"
	}

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}

	return &SMTPNotifier{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}, nil
}

// Send delivers a single message. The workflows treat delivery as fire and
// forget, so errors are reported but never block account state changes.
func (n *SMTPNotifier) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", n.from, to, subject, body)
	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// LogNotifier logs messages instead of delivering them. It is the fallback
// when no SMTP relay is configured (local development, tests).
type LogNotifier struct{}

// Send logs the message and reports success.
func (LogNotifier) Send(_ context.Context, to, subject, body string) error {
	slog.Info("outgoing email (log only)", "to", to, "subject", subject)
	slog.Debug("outgoing email body", "body", body)
	return nil
}
