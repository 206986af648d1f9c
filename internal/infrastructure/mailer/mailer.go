package mailer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Email represents an email message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Mailer sends mail through an SMTP server
type Mailer struct {
	from   string
	dialer *gomail.Dialer
	send   func(d *gomail.Dialer, msg ...*gomail.Message) error
}

var verificationTemplate = template.Must(template.New("verify").Parse(
	`<p>Confirm the email address for your Hedera account <b>{{.Name}}</b>.</p>` +
		`<p><a href="{{.URL}}">Verify email</a></p>`,
))

// NewMailer creates a new Mailer from cfg.
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		send: func(d *gomail.Dialer, msg ...*gomail.Message) error {
			return d.DialAndSend(msg...)
		},
	}, nil
}

// Send sends a single email.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return errors.New("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	if err := m.send(m.dialer, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendVerification mails the email verification link to a new user
func (m *Mailer) SendVerification(ctx context.Context, to, name, url string) error {
	var html strings.Builder
	if err := verificationTemplate.Execute(&html, struct{ Name, URL string }{name, url}); err != nil {
		return err
	}
	return m.Send(ctx, Email{
		To:       []string{to},
		Subject:  "Verify your email address",
		Body:     "Open this link to verify your email address: " + url,
		HTMLBody: html.String(),
	})
}

func (c Config) validate() error {
	switch {
	case c.Host == "":
		return errors.New("missing SMTP host")
	case c.Port == 0:
		return errors.New("missing SMTP port")
	case c.From == "":
		return errors.New("missing SMTP from address")
	}
	return nil
}
