// Package notification ставит уведомления в очередь и передаёт их отправителю через RabbitMQ.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/adminstudio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Repository описывает операции хранилища с уведомлениями.
type Repository interface {
	CreateNotifications(ctx context.Context, subject, message string, accountIDs []string) ([]models.Notification, error)
	ListEnqueuedNotifications(ctx context.Context) ([]models.Notification, error)
	// AfterCommit выполняет fn после фиксации транзакции из ctx либо сразу.
	AfterCommit(ctx context.Context, fn func(ctx context.Context))
}

// Publisher публикует сообщение в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Dispatcher создаёт записи уведомлений и запускает их отправку.
type Dispatcher struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Dispatcher.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Request создаёт по одному уведомлению в статусе enqueued на каждого получателя.
// После фиксации транзакции все уведомления в очереди, а не только новые,
// публикуются одним пакетом. Ошибка публикации не отменяет созданные записи:
// они остаются enqueued и уйдут со следующим пакетом.
func (d *Dispatcher) Request(ctx context.Context, subject, message string, recipients []string) error {
	const op = "notification.Request"
	if len(recipients) == 0 {
		return nil
	}

	created, err := d.repo.CreateNotifications(ctx, subject, message, recipients)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	d.log.Debug("notifications enqueued", slog.String("op", op), slog.Int("count", len(created)))

	d.repo.AfterCommit(ctx, d.dispatch)
	return nil
}

// dispatch публикует все уведомления в статусе enqueued.
func (d *Dispatcher) dispatch(ctx context.Context) {
	const op = "notification.dispatch"
	log := d.log.With(slog.String("op", op))

	// исходный запрос может завершиться раньше публикации
	ctx = context.WithoutCancel(ctx)

	pending, err := d.repo.ListEnqueuedNotifications(ctx)
	if err != nil {
		log.Error("failed to list enqueued notifications", sl.Err(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	batch := models.DispatchBatch{Notifications: pending}
	if err := d.publisher.Publish(ctx, rabbitmq.DispatchRoutingKey, batch); err != nil {
		log.Error("failed to publish notifications", sl.Err(err), slog.Int("count", len(pending)))
		return
	}
	log.Info("notifications dispatched", slog.Int("count", len(pending)))
}
