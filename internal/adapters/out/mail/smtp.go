// Package mail delivers order notifications by e-mail and resolves who
// receives them.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"procurement/internal/core/ports"

	"golang.org/x/time/rate"
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string

	// RatePerSecond caps outgoing messages; zero or less means 1.
	RatePerSecond float64
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer implements ports.Mailer with net/smtp. A token bucket keeps
// bursts of decisions from tripping the relay's rate limits.
type SMTPMailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	limiter *rate.Limiter
	send    sendFunc
	now     func() time.Time
}

// NewSMTPMailer limits sends to cfg.RatePerSecond, at least one per second.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		auth:    auth,
		from:    cfg.From,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		send:    smtp.SendMail,
		now:     time.Now,
	}
}

// Send waits for a rate-limit token, then hands the message to the relay.
// It gives up when ctx is done first.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if len(msg.To) == 0 {
		return nil
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limit: %w", err)
	}
	if err := m.send(m.addr, m.auth, m.from, msg.To, m.compose(msg)); err != nil {
		return fmt.Errorf("send mail to %d recipients: %w", len(msg.To), err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg ports.MailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer implements ports.Mailer by logging each message. It stands in
// for SMTP when no relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "log_mailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	m.logger.InfoContext(ctx, "Mail not sent, no SMTP relay configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
