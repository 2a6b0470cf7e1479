package email

import (
	"context"
	"fmt"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

const smtpTimeout = 15 * time.Second

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender returns an SMTP sender when real email is enabled, otherwise a
// sender that only logs the message.
func NewSender(cfg config.SMTPSettings) Sender {
	if !cfg.Enabled {
		return LogSender{}
	}
	return &SMTPSender{cfg: cfg}
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	config.WithContext(ctx).WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Infof("Email simulation\n%s", msg.HTML)
	return nil
}

type SMTPSender struct {
	cfg config.SMTPSettings
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := newMail(s.cfg.Sender, msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Server, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Sender),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(smtpTimeout),
	}
	// 465 speaks TLS from the first byte; other ports must upgrade via STARTTLS.
	if s.cfg.Port == 465 {
		return append(opts, mail.WithSSL())
	}
	return append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
}

func newMail(from string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
