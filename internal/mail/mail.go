// Package mail sends best-effort notification emails. Callers hand a Message
// to a Notifier and move on; delivery failures are logged and dropped.
package mail

import (
	"context"
	"fmt"

	"github.com/hsm-gustavo/account-api/internal/config"
	"github.com/hsm-gustavo/account-api/internal/logging"
	"gopkg.in/gomail.v2"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// VerificationMessage is the plaintext email sent after registration.
func VerificationMessage(from, to, name string) Message {
	return Message{
		From:    from,
		To:      to,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Hi %s, please verify your email by clicking this link.", name),
	}
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers messages through an authenticated SMTP server.
type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender stands in for SMTP when no mail credentials are configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info(ctx, "mail disabled, dropping message", "to", msg.To, "subject", msg.Subject)
	return nil
}

// NewSender picks SMTP when credentials are present and LogSender otherwise.
func NewSender(cfg config.MailConfig, log logging.Logger) Sender {
	if !cfg.Enabled() {
		log.Warn(context.Background(), "EMAIL_USER not set, verification emails will not be delivered")
		return NewLogSender(log)
	}
	return NewSMTPSender(cfg)
}
