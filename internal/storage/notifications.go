package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

const notificationColumns = `id, account_id, subject, message, status, transport,
	attempts, last_error, provider, created, modified`

func scanNotification(row rowScanner) (*models.Notification, error) {
	var n models.Notification
	if err := row.Scan(&n.ID, &n.AccountID, &n.Subject, &n.Message, &n.Status, &n.Transport,
		&n.Attempts, &n.LastError, &n.Provider, &n.Created, &n.Modified); err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotifications(rows *sql.Rows) ([]models.Notification, error) {
	defer func() {
		_ = rows.Close()
	}()
	result := make([]models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateNotifications одной вставкой создаёт по уведомлению в статусе
// enqueued на каждого получателя.
func (s *Storage) CreateNotifications(ctx context.Context, subject, message string, accountIDs []string) ([]models.Notification, error) {
	const op = "storage.CreateNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if len(accountIDs) == 0 {
		return []models.Notification{}, nil
	}

	query := `INSERT INTO notifications (account_id, subject, message, status, transport)
			  SELECT r.account_id::uuid, $2::text, $3::text, $4::text, $5::text
			  FROM unnest($1::text[]) WITH ORDINALITY AS r(account_id, n)
			  ORDER BY r.n
			  RETURNING ` + notificationColumns
	rows, err := s.conn(ctx).QueryContext(ctx, query, accountIDs, subject, message,
		models.NotificationEnqueued, models.TransportMail)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEnqueuedNotifications возвращает все уведомления в статусе enqueued.
func (s *Storage) ListEnqueuedNotifications(ctx context.Context) ([]models.Notification, error) {
	const op = "storage.ListEnqueuedNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + notificationColumns + `
			  FROM notifications
			  WHERE status = $1 AND NOT is_removed
			  ORDER BY created, id`
	rows, err := s.conn(ctx).QueryContext(ctx, query, models.NotificationEnqueued)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetNotification возвращает уведомление по ID.
func (s *Storage) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	const op = "storage.GetNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(op, err)
	}
	return n, nil
}

// ClaimNotification захватывает уведомление в статусе enqueued на время lease,
// чтобы параллельные обработчики одного пакета не отправили его дважды.
// Если уведомление уже не в очереди или захвачено, возвращает models.ErrNotFound.
func (s *Storage) ClaimNotification(ctx context.Context, id string, now time.Time, lease time.Duration) (*models.Notification, error) {
	const op = "storage.ClaimNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE notifications
			  SET locked_until = $3
			  WHERE id = $1 AND status = $4
			    AND (locked_until IS NULL OR locked_until < $2)
			  RETURNING ` + notificationColumns
	n, err := scanNotification(s.conn(ctx).QueryRowContext(ctx, query,
		id, now, now.Add(lease), models.NotificationEnqueued))
	if err != nil {
		return nil, notFound(op, err)
	}
	return n, nil
}

// MarkNotificationSent переводит уведомление enqueued в sent и запоминает провайдера.
func (s *Storage) MarkNotificationSent(ctx context.Context, id, provider string) error {
	const op = "storage.MarkNotificationSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET status = $2, provider = $3, locked_until = NULL, modified = $5
			  WHERE id = $1 AND status = $4`
	return s.execOne(ctx, op, query, id, models.NotificationSent, provider,
		models.NotificationEnqueued, time.Now().UTC())
}

// MarkNotificationUndeliverable переводит уведомление enqueued в конечный статус undeliverable.
func (s *Storage) MarkNotificationUndeliverable(ctx context.Context, id, reason string) error {
	const op = "storage.MarkNotificationUndeliverable"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET status = $2, last_error = $3, locked_until = NULL, modified = $5
			  WHERE id = $1 AND status = $4`
	return s.execOne(ctx, op, query, id, models.NotificationUndeliverable, reason,
		models.NotificationEnqueued, time.Now().UTC())
}

// RecordNotificationFailure увеличивает счётчик попыток и снимает захват.
// Когда попыток становится maxAttempts, уведомление становится undeliverable.
func (s *Storage) RecordNotificationFailure(ctx context.Context, id, lastError string, maxAttempts int) (*models.Notification, error) {
	const op = "storage.RecordNotificationFailure"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET attempts = attempts + 1,
			      last_error = $2,
			      locked_until = NULL,
			      status = CASE WHEN attempts + 1 >= $3 THEN $5 ELSE status END,
			      modified = $6
			  WHERE id = $1 AND status = $4
			  RETURNING ` + notificationColumns
	n, err := scanNotification(s.conn(ctx).QueryRowContext(ctx, query, id, lastError, maxAttempts,
		models.NotificationEnqueued, models.NotificationUndeliverable, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
