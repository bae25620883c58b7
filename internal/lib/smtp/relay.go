package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/magabrotheeeer/adminstudio/internal/config"
)

// RelayTransport резервный SMTP-релей (например, MailHog).
// STARTTLS и авторизация используются, только если сервер их объявляет.
type RelayTransport struct {
	host       string
	port       int
	user       string
	pass       string
	from       string
	skipVerify bool
	log        *slog.Logger
}

// NewRelayTransport создает новый экземпляр RelayTransport.
func NewRelayTransport(cfg *config.Config, log *slog.Logger) *RelayTransport {
	return &RelayTransport{
		host:       cfg.RelayHost,
		port:       cfg.RelayPort,
		user:       cfg.RelayUser,
		pass:       cfg.RelayPass,
		from:       senderAddress(cfg.DefaultFromEmail, cfg.RelayUser),
		skipVerify: cfg.SkipTLSVerify,
		log:        log,
	}
}

// Name возвращает имя провайдера.
func (t *RelayTransport) Name() string { return ProviderRelay }

// Send отправляет письмо через релей.
func (t *RelayTransport) Send(ctx context.Context, subject, message string, to []string) error {
	const op = "smtp.RelayTransport.Send"
	if t.host == "" {
		return fmt.Errorf("%s: relay host is not configured", op)
	}

	client, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := deliver(client, t.from, to, buildMessage(t.from, to, subject, message)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	t.log.Debug("email sent", slog.String("provider", ProviderRelay), slog.Any("to", to))
	return nil
}

func (t *RelayTransport) dial(ctx context.Context) (Client, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(t.host, strconv.Itoa(t.port)))
	if err != nil {
		return nil, fmt.Errorf("failed to dial relay: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.Hello("localhost"); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("EHLO: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		cfg := &tls.Config{
			ServerName:         t.host,
			InsecureSkipVerify: t.skipVerify, //nolint:gosec
		}
		if err := client.StartTLS(cfg); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if t.user != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", t.user, t.pass, t.host)); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("relay auth failed: %w", err)
			}
		}
	}

	return client, nil
}
