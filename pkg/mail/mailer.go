package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"lifeline/internal/config"
	"lifeline/pkg/logger"
)

// Mailer sends transactional email over SMTP.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *logger.Logger
}

func NewSMTPMailer(cfg *config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTPMailer{
		dialer:   dialer,
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
		logger:   log,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")

	return nil
}
