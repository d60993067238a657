package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"adf-relay/internal/common/config"
	"adf-relay/internal/common/logger"
)

// SMTPSender submits messages over SMTP with PlainAuth, using STARTTLS when
// configured. This is the Gmail app-password path.
type SMTPSender struct {
	cfg config.EmailConfig
	log logger.Logger
}

func NewSMTPSender(cfg config.EmailConfig, log logger.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) Provider() string {
	return "smtp"
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTP.Host, s.cfg.SMTP.Port)

	var auth smtp.Auth
	if s.cfg.FromAddress != "" && s.cfg.AppPassword != "" {
		auth = smtp.PlainAuth("", s.cfg.FromAddress, s.cfg.AppPassword, s.cfg.SMTP.Host)
	}

	payload := msg.Build()

	if s.cfg.SMTP.UseTLS {
		return s.sendWithTLS(addr, auth, msg.From, []string{msg.To}, payload)
	}

	return smtp.SendMail(addr, auth, msg.From, []string{msg.To}, payload)
}

func (s *SMTPSender) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTP.Host,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
