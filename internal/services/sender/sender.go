// Package sender доставляет уведомления из пакетов очереди через цепочку транспортов.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

const minLease = time.Minute

// Repository описывает операции хранилища, нужные отправителю.
type Repository interface {
	// ClaimNotification возвращает models.ErrNotFound, если уведомление уже
	// не в очереди или захвачено другим обработчиком.
	ClaimNotification(ctx context.Context, id string, now time.Time, lease time.Duration) (*models.Notification, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	MarkNotificationSent(ctx context.Context, id, provider string) error
	MarkNotificationUndeliverable(ctx context.Context, id, reason string) error
	RecordNotificationFailure(ctx context.Context, id, lastError string, maxAttempts int) (*models.Notification, error)
}

// Transport способ доставки письма.
type Transport interface {
	Name() string
	Send(ctx context.Context, subject, message string, to []string) error
}

// Config параметры доставки.
type Config struct {
	MaxAttempts int
	SendTimeout time.Duration
}

// Service отправляет уведомления.
type Service struct {
	repo       Repository
	transports []Transport
	cfg        Config
	lease      time.Duration
	metrics    metrics.Collector
	log        *slog.Logger
	now        func() time.Time
}

// New создает новый экземпляр Service. Транспорты пробуются в переданном порядке.
func New(repo Repository, transports []Transport, cfg Config, collector metrics.Collector, log *slog.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	lease := 2 * cfg.SendTimeout * time.Duration(len(transports))
	if lease < minLease {
		lease = minLease
	}
	return &Service{
		repo:       repo,
		transports: transports,
		cfg:        cfg,
		lease:      lease,
		metrics:    collector,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// HandleBatch обрабатывает сообщение очереди с пакетом уведомлений.
// Нечитаемое сообщение отклоняется через rabbitmq.ErrDiscard. Ошибка
// хранилища возвращается, чтобы пакет вернулся в очередь; уже отправленные
// уведомления при повторе пропускаются.
func (s *Service) HandleBatch(ctx context.Context, body []byte) error {
	const op = "sender.HandleBatch"
	var batch models.DispatchBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		return fmt.Errorf("%s: %w: %w", op, rabbitmq.ErrDiscard, err)
	}

	var errs []error
	for _, n := range batch.Notifications {
		if err := s.Deliver(ctx, n.ID); err != nil {
			s.log.Error("failed to deliver notification", slog.String("op", op),
				slog.String("notification_id", n.ID), sl.Err(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}
	return nil
}

// Deliver отправляет одно уведомление, если оно ещё в очереди.
func (s *Service) Deliver(ctx context.Context, id string) error {
	const op = "sender.Deliver"
	log := s.log.With(slog.String("op", op), slog.String("notification_id", id))

	n, err := s.repo.ClaimNotification(ctx, id, s.now(), s.lease)
	if errors.Is(err, models.ErrNotFound) {
		log.Debug("notification is not pending, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.repo.GetAccount(ctx, n.AccountID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if account == nil || account.Email == "" {
		if err := s.repo.MarkNotificationUndeliverable(ctx, id, "recipient has no email address"); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.metrics.RecordNotification("", metrics.OutcomeDropped)
		log.Warn("recipient has no email address, notification dropped")
		return nil
	}

	to := []string{account.Email}
	var lastErr error
	for _, t := range s.transports {
		sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
		lastErr = t.Send(sendCtx, n.Subject, n.Message, to)
		cancel()
		if lastErr == nil {
			if err := s.repo.MarkNotificationSent(ctx, id, t.Name()); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			s.metrics.RecordNotification(t.Name(), metrics.OutcomeSent)
			log.Info("notification sent", slog.String("provider", t.Name()))
			return nil
		}
		s.metrics.RecordNotification(t.Name(), metrics.OutcomeFailed)
		log.Warn("transport failed, trying next", slog.String("provider", t.Name()), sl.Err(lastErr))
	}
	if lastErr == nil {
		lastErr = errors.New("no transports configured")
	}

	updated, err := s.repo.RecordNotificationFailure(ctx, id, lastErr.Error(), s.cfg.MaxAttempts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if updated.Status == models.NotificationUndeliverable {
		s.metrics.RecordNotification("", metrics.OutcomeDropped)
		log.Error("notification undeliverable", slog.Int("attempts", updated.Attempts), sl.Err(lastErr))
		return nil
	}
	log.Warn("all transports failed, notification stays enqueued", slog.Int("attempts", updated.Attempts))
	return nil
}
