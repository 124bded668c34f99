package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"estatehub/contexts/engagement/notification-service/ports"

	"gopkg.in/gomail.v2"
)

// SMTP sends plain-text mail through one dialer per message.
type SMTP struct {
	dialer *gomail.Dialer
	sender string
	logger *slog.Logger
}

func NewSMTP(host string, port int, user string, password string, sender string, logger *slog.Logger) (*SMTP, error) {
	if strings.TrimSpace(host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if strings.TrimSpace(sender) == "" {
		return nil, errors.New("smtp sender is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		sender: sender,
		logger: logger,
	}, nil
}

func (s *SMTP) Send(ctx context.Context, email ports.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(buildMessage(s.sender, email)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	s.logger.Debug("email sent",
		"event", "mailer_sent",
		"module", "internal/platform/mailer",
		"layer", "platform",
		"to", email.To,
	)
	return nil
}

func buildMessage(sender string, email ports.Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", sender)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	return m
}

// Log writes mail to the logger instead of sending it. Used when SMTP is not configured.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(_ context.Context, email ports.Email) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email suppressed",
		"event", "mailer_suppressed",
		"module", "internal/platform/mailer",
		"layer", "platform",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}
