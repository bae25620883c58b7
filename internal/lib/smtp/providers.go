package smtp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/adminstudio/internal/config"
)

// NewTransports собирает транспорты в порядке notification.providers.
func NewTransports(cfg *config.Config, log *slog.Logger) ([]Transport, error) {
	const op = "smtp.NewTransports"
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("%s: no notification providers configured", op)
	}

	transports := make([]Transport, 0, len(cfg.Providers))
	seen := make(map[string]bool, len(cfg.Providers))
	for _, raw := range cfg.Providers {
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case ProviderSMTP:
			transports = append(transports, NewSMTPTransport(cfg, log))
		case ProviderRelay:
			transports = append(transports, NewRelayTransport(cfg, log))
		case ProviderLog:
			transports = append(transports, NewLogTransport(log))
		default:
			return nil, fmt.Errorf("%s: unknown provider %q", op, raw)
		}
	}
	return transports, nil
}
