// Package reservation реализует жизненный цикл бронирований участников.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Действия с бронированием для метрик.
const (
	actionCreated   = "created"
	actionCancelled = "cancelled"
)

// Repository описывает операции хранилища, нужные для бронирований.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	GetProfile(ctx context.Context, role models.Role, id string) (*models.Profile, error)
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	CreateReservation(ctx context.Context, r models.Reservation) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	// CancelReservation возвращает models.ErrNotFound, если бронирование не в статусе RESERVED.
	CancelReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListActiveReservations(ctx context.Context, memberID, scheduleID string) ([]*models.Reservation, error)
}

// Members находит или создаёт профиль участника для учётной записи.
type Members interface {
	EnsureForAccount(ctx context.Context, role models.Role, account *models.Account) (*models.Profile, bool, error)
}

// Service управляет бронированиями.
type Service struct {
	repo    Repository
	members Members
	metrics metrics.Collector
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, members Members, collector metrics.Collector, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		metrics: collector,
		log:     log,
	}
}

// Create бронирует место на занятии для учётной записи accountID.
// Профиль участника создаётся при первом бронировании.
func (s *Service) Create(ctx context.Context, accountID, scheduleID, notes string) (*models.Reservation, error) {
	const op = "reservation.Create"
	log := s.log.With(slog.String("op", op), slog.String("account_id", accountID), slog.String("schedule_id", scheduleID))

	var created *models.Reservation
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.repo.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		member, _, err := s.members.EnsureForAccount(ctx, models.RoleMember, account)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetSchedule(ctx, scheduleID); err != nil {
			return err
		}
		created, err = s.repo.CreateReservation(ctx, models.Reservation{
			MemberID:   member.ID,
			ScheduleID: scheduleID,
			Status:     models.ReservationReserved,
			Notes:      notes,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RecordReservation(actionCreated)
	log.Info("reservation created", slog.String("reservation_id", created.ID))
	return created, nil
}

// Cancel отменяет бронирование, принадлежащее учётной записи accountID.
// Отменить можно только бронирование в статусе RESERVED.
func (s *Service) Cancel(ctx context.Context, reservationID, accountID string) (*models.Reservation, error) {
	const op = "reservation.Cancel"

	current, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	member, err := s.repo.GetProfile(ctx, models.RoleMember, current.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if member.AccountID != accountID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	cancelled, err := s.repo.CancelReservation(ctx, reservationID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, &models.InvalidStateError{
			Reason: "Only RESERVED reservations can be cancelled.",
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RecordReservation(actionCancelled)
	s.log.Info("reservation cancelled", slog.String("op", op), slog.String("reservation_id", reservationID))
	return cancelled, nil
}

// Get возвращает бронирование по ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Reservation, error) {
	const op = "reservation.Get"
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListActive возвращает бронирования участника на занятие в статусе RESERVED.
func (s *Service) ListActive(ctx context.Context, memberID, scheduleID string) ([]*models.Reservation, error) {
	const op = "reservation.ListActive"
	list, err := s.repo.ListActiveReservations(ctx, memberID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
