// Package mailer sends notification email over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/campus-helpdesk/grievance-service/internal/config"
)

// Sender delivers a single HTML email to one or more recipients.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPSender sends mail through a configured SMTP relay.
type SMTPSender struct {
	cfg    config.SMTPConfig
	server string
	auth   smtp.Auth
}

// NewSMTPSender builds a sender from config.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		cfg:    cfg,
		server: cfg.Host + ":" + cfg.Port,
		auth:   auth,
	}
}

// IsConfigured reports whether outbound mail can be attempted.
func (s *SMTPSender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Port != "" && s.cfg.From != ""
}

// Send delivers an HTML email.
func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("smtp not configured")
	}
	if len(to) == 0 {
		return nil
	}

	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", htmlBody)

	return smtp.SendMail(s.server, s.auth, s.cfg.From, to, []byte(msg.String()))
}
