package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/config"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

const dialTimeout = 10 * time.Second

// SMTPTransport основной почтовый провайдер: STARTTLS обязателен, авторизация PLAIN.
type SMTPTransport struct {
	host string
	port string
	user string
	pass string
	from string
	log  *slog.Logger

	connect func(ctx context.Context) (Client, error)
}

// NewSMTPTransport создает новый экземпляр SMTPTransport.
func NewSMTPTransport(cfg *config.Config, log *slog.Logger) *SMTPTransport {
	t := &SMTPTransport{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: senderAddress(cfg.DefaultFromEmail, cfg.SMTPUser),
		log:  log,
	}
	t.connect = t.dial
	return t
}

// Name возвращает имя провайдера.
func (t *SMTPTransport) Name() string { return ProviderSMTP }

// Send отправляет письмо получателям to.
func (t *SMTPTransport) Send(ctx context.Context, subject, message string, to []string) error {
	const op = "smtp.SMTPTransport.Send"
	if t.host == "" {
		return fmt.Errorf("%s: smtp host is not configured", op)
	}

	client, err := t.connect(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := deliver(client, t.from, to, buildMessage(t.from, to, subject, message)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	t.log.Debug("email sent", slog.String("provider", ProviderSMTP), slog.Any("to", to))
	return nil
}

func (t *SMTPTransport) dial(ctx context.Context) (Client, error) {
	addr := net.JoinHostPort(t.host, t.port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		t.log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		t.log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	tlsConfig := &tls.Config{
		ServerName: t.host,
		MinVersion: tls.VersionTLS12,
	}
	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.log.Error("SMTP server does not support STARTTLS")
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.log.Error("failed to start TLS", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", t.user, t.pass, t.host)
	if err = client.Auth(auth); err != nil {
		t.log.Error("smtp auth failed", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	return client, nil
}

func senderAddress(from, fallback string) string {
	if from != "" {
		return from
	}
	return fallback
}
