package mailer

import (
	"context"
	"time"

	mail "github.com/go-mail/mail"

	"github.com/mindfuel/daily-quotes/internal/config"
	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
)

// SMTPTransport sends mail over an authenticated SMTP connection,
// negotiating STARTTLS where the server offers it.
type SMTPTransport struct {
	dialer   *mail.Dialer
	from     string
	fromName string
	envName  string
	now      func() time.Time
}

// NewSMTPTransport creates an SMTP transport from mail config.
func NewSMTPTransport(cfg config.MailConfig, envName string) *SMTPTransport {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = cfg.Timeout()
	return &SMTPTransport{
		dialer:   d,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		envName:  envName,
		now:      time.Now,
	}
}

// SendQuote delivers the quote email to one recipient and reports success.
func (t *SMTPTransport) SendQuote(_ context.Context, to string, q *domain.Quote, name string, freq domain.Frequency) bool {
	text, html := quoteBodies(name, q)

	m := mail.NewMessage()
	m.SetAddressHeader("From", t.from, t.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", quoteSubject(freq))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := t.dialer.DialAndSend(m); err != nil {
		logger.Error("failed to send email", "to", to, "error", err)
		return false
	}
	logger.Info("email sent", "to", to, "frequency", string(freq))
	return true
}

// SendSummary delivers the aggregate report to the administrator. Failures
// are logged, never propagated.
func (t *SMTPTransport) SendSummary(_ context.Context, s domain.DailySummary, adminAddr string) {
	if adminAddr == "" {
		logger.Warn("no admin email configured, skipping summary")
		return
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", t.from, t.fromName)
	m.SetHeader("To", adminAddr)
	m.SetHeader("Subject", summarySubject(t.envName))
	m.SetBody("text/plain", summaryBody(s, t.now()))

	if err := t.dialer.DialAndSend(m); err != nil {
		logger.Error("failed to send summary email", "admin_email", adminAddr, "error", err)
		return
	}
	logger.Info("summary email sent", "admin_email", adminAddr)
}
