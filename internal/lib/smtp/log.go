package smtp

import (
	"context"
	"log/slog"
)

// LogTransport пишет уведомление в лог вместо отправки. Используется локально
// и как последний провайдер в цепочке.
type LogTransport struct {
	log *slog.Logger
}

// NewLogTransport создает новый экземпляр LogTransport.
func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

// Name возвращает имя провайдера.
func (t *LogTransport) Name() string { return ProviderLog }

// Send записывает письмо в лог.
func (t *LogTransport) Send(ctx context.Context, subject, message string, to []string) error {
	t.log.InfoContext(ctx, "notification",
		slog.Any("to", to),
		slog.String("subject", subject),
		slog.String("message", message),
	)
	return nil
}
