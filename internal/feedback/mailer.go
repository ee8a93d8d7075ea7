package feedback

import (
	"gopkg.in/gomail.v2"

	"github.com/Kalyan-5460/Bujji-Weather/internal/config"
)

// SMTPMailer delivers mail through a plain SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer builds a mailer from the feedback SMTP settings, or nil when
// the setup is incomplete.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if !cfg.MailEnabled() {
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.FeedbackFrom,
		to:     cfg.FeedbackTo,
	}
}

// Send delivers one message. Any dial or send failure is returned as-is for
// the relay to classify.
func (m *SMTPMailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
