// Package mailer delivers outbound email. Delivery is best-effort: callers
// fire it from a goroutine and only log failures.
package mailer

import (
	"fmt"
	"net/smtp"

	"reviewhub/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

// NewSender returns an SMTP-backed Sender. When no SMTP host is configured
// it returns a sender that just logs the message, which keeps local
// development working without a mail server.
func NewSender(config utils.EmailConfig, log *zap.Logger) Sender {
	if config.Host == "" {
		return &logSender{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpSender{
		config: config,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		s.config.From, to, subject, body,
	))

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	s.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// logSender writes the message to the log instead of sending it.
type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(to, subject, body string) error {
	s.log.Info("Email (not sent, no SMTP host configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
