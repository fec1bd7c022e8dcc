package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/frahmantamala/talento-plus/internal"
	"github.com/jordan-wright/email"
)

// MailSender delivers a single HTML message.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type sendFunc func(e *email.Email, addr string, a smtp.Auth) error

// Mailer sends mail through the configured SMTP relay.
type Mailer struct {
	from string
	addr string
	auth smtp.Auth
	send sendFunc
}

func NewMailer(cfg internal.MailConfig) *Mailer {
	m := &Mailer{
		from: cfg.From,
		addr: cfg.Addr(),
		send: func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
	}
	if m.from == "" {
		m.from = cfg.User
	}
	if cfg.User != "" {
		m.auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return m
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	if err := m.send(e, m.addr, m.auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
