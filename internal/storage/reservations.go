package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

const reservationColumns = `id, member_id, schedule_id, status, notes, created, modified`

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var r models.Reservation
	if err := row.Scan(&r.ID, &r.MemberID, &r.ScheduleID, &r.Status, &r.Notes,
		&r.Created, &r.Modified); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReservation сохраняет бронирование.
func (s *Storage) CreateReservation(ctx context.Context, r models.Reservation) (*models.Reservation, error) {
	const op = "storage.CreateReservation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reservations (member_id, schedule_id, status, notes)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + reservationColumns
	created, err := scanReservation(s.conn(ctx).QueryRowContext(ctx, query,
		r.MemberID, r.ScheduleID, r.Status, r.Notes))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetReservation возвращает бронирование по ID.
func (s *Storage) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	const op = "storage.GetReservation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + reservationColumns + `
			  FROM reservations
			  WHERE id = $1 AND NOT is_removed`
	r, err := scanReservation(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(op, err)
	}
	return r, nil
}

// CancelReservation переводит бронирование из RESERVED в CANCELLED одним
// условным обновлением. Если строка не подошла (нет такого бронирования
// или статус другой), возвращает models.ErrNotFound.
func (s *Storage) CancelReservation(ctx context.Context, id string) (*models.Reservation, error) {
	const op = "storage.CancelReservation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE reservations
			  SET status = $2, modified = $4
			  WHERE id = $1 AND status = $3 AND NOT is_removed
			  RETURNING ` + reservationColumns
	r, err := scanReservation(s.conn(ctx).QueryRowContext(ctx, query, id,
		models.ReservationCancelled, models.ReservationReserved, time.Now().UTC()))
	if err != nil {
		return nil, notFound(op, err)
	}
	return r, nil
}

// ListActiveReservations возвращает бронирования участника на занятие в статусе RESERVED.
func (s *Storage) ListActiveReservations(ctx context.Context, memberID, scheduleID string) ([]*models.Reservation, error) {
	const op = "storage.ListActiveReservations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if validID(memberID) != nil || validID(scheduleID) != nil {
		return []*models.Reservation{}, nil
	}

	query := `SELECT ` + reservationColumns + `
			  FROM reservations
			  WHERE member_id = $1 AND schedule_id = $2 AND status = $3 AND NOT is_removed
			  ORDER BY created, id`
	rows, err := s.conn(ctx).QueryContext(ctx, query, memberID, scheduleID, models.ReservationReserved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
