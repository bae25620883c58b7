// Package schedule управляет студиями, залами и расписанием занятий.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Repository описывает операции хранилища с расписанием.
type Repository interface {
	CreateStudio(ctx context.Context, studio models.Studio) (*models.Studio, error)
	GetStudio(ctx context.Context, id string) (*models.Studio, error)
	ListStudios(ctx context.Context) ([]*models.Studio, error)
	CreateRoom(ctx context.Context, room models.Room) (*models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	CreateSchedule(ctx context.Context, sc models.Schedule) (*models.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error)
	GetProfile(ctx context.Context, role models.Role, id string) (*models.Profile, error)
}

// Cache кэш прочитанных занятий.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service управляет расписанием.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создает новый экземпляр Service. ttl время жизни занятия в кэше.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func scheduleKey(id string) string {
	return "schedule:" + id
}

// CreateStudio создаёт студию.
func (s *Service) CreateStudio(ctx context.Context, studio models.Studio) (*models.Studio, error) {
	const op = "schedule.CreateStudio"
	studio.Name = strings.TrimSpace(studio.Name)
	if studio.Name == "" {
		return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "name must not be empty."})
	}
	created, err := s.repo.CreateStudio(ctx, studio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("studio created", slog.String("op", op), slog.String("studio_id", created.ID))
	return created, nil
}

// GetStudio возвращает студию по ID.
func (s *Service) GetStudio(ctx context.Context, id string) (*models.Studio, error) {
	const op = "schedule.GetStudio"
	studio, err := s.repo.GetStudio(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return studio, nil
}

// ListStudios возвращает все студии.
func (s *Service) ListStudios(ctx context.Context) ([]*models.Studio, error) {
	const op = "schedule.ListStudios"
	list, err := s.repo.ListStudios(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// CreateRoom создаёт зал в существующей студии.
func (s *Service) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	const op = "schedule.CreateRoom"
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "name must not be empty."})
	}
	if room.Capacity <= 0 {
		return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "capacity must be a positive integer."})
	}
	if _, err := s.repo.GetStudio(ctx, room.StudioID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("room created", slog.String("op", op), slog.String("room_id", created.ID))
	return created, nil
}

// GetRoom возвращает зал по ID.
func (s *Service) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	const op = "schedule.GetRoom"
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return room, nil
}

// ListRooms возвращает все залы.
func (s *Service) ListRooms(ctx context.Context) ([]*models.Room, error) {
	const op = "schedule.ListRooms"
	list, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Create добавляет занятие в расписание. Пустой статус означает draft.
// Инструктор и зал должны существовать.
func (s *Service) Create(ctx context.Context, sc models.Schedule) (*models.Schedule, error) {
	const op = "schedule.Create"
	if sc.Status == "" {
		sc.Status = models.ScheduleDraft
	}
	if !sc.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "Invalid schedule status."})
	}
	if sc.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "duration_minutes must be a positive integer."})
	}

	if _, err := s.repo.GetProfile(ctx, models.RoleInstructor, sc.InstructorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "Instructor does not exist."})
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.GetRoom(ctx, sc.RoomID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, &models.InputError{Reason: "Room does not exist."})
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateSchedule(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("schedule created", slog.String("op", op), slog.String("schedule_id", created.ID))
	return created, nil
}

// Get возвращает занятие по ID, сначала из кэша. Ошибки кэша не мешают
// чтению из базы.
func (s *Service) Get(ctx context.Context, id string) (*models.Schedule, error) {
	const op = "schedule.Get"
	log := s.log.With(slog.String("op", op), slog.String("schedule_id", id))

	var cached models.Schedule
	found, err := s.cache.Get(ctx, scheduleKey(id), &cached)
	if err != nil {
		log.Warn("failed to read schedule from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	sc, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, scheduleKey(id), sc, s.ttl); err != nil {
		log.Warn("failed to cache schedule", sl.Err(err))
	}
	return sc, nil
}

// List возвращает занятия по фильтру, упорядоченные по времени начала.
func (s *Service) List(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error) {
	const op = "schedule.List"
	list, err := s.repo.ListSchedules(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
