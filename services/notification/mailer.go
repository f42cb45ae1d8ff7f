package notification

import (
	"context"
	"errors"

	"pathlab/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, username, password), from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, p models.NotificationPayload) error {
	if p.Email == "" {
		return errors.New("no recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body, err := Compose(p)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// NoopMailer only logs; used when SMTP is not configured.
type NoopMailer struct {
	Logger *zap.Logger
}

func (m NoopMailer) Send(_ context.Context, p models.NotificationPayload) error {
	if m.Logger != nil {
		m.Logger.Debug("SMTP not configured, email skipped",
			zap.String("kind", p.Kind), zap.String("appointment", p.AppointmentID))
	}
	return nil
}
