package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"asumo/config"
)

// SMTPMailer delivers mail through the association's SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPMailer builds a mailer from the loaded configuration.
func NewSMTPMailer() (*SMTPMailer, error) {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if cfg.SMTPPort == "" {
		return nil, fmt.Errorf("SMTP_PORT not set")
	}
	if cfg.SMTPUser == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
	}, nil
}

// Send delivers one HTML email.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	msg := []byte(
		"From: " + m.username + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			html,
	)

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
