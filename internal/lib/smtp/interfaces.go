// Package smtp содержит транспорты доставки уведомлений: основной SMTP
// с обязательным STARTTLS, SMTP-релей и запись в лог.
package smtp

import (
	"context"
	"io"
)

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Transport способ доставки уведомления.
type Transport interface {
	Name() string
	Send(ctx context.Context, subject, message string, to []string) error
}

// Имена транспортов в настройке notification.providers.
const (
	ProviderSMTP  = "smtp"
	ProviderRelay = "relay"
	ProviderLog   = "log"
)
