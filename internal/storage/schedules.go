package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// CreateStudio сохраняет студию.
func (s *Storage) CreateStudio(ctx context.Context, studio models.Studio) (*models.Studio, error) {
	const op = "storage.CreateStudio"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO studios (name, address, is_active)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, address, is_active, created`
	var st models.Studio
	err := s.conn(ctx).QueryRowContext(ctx, query, studio.Name, studio.Address, studio.IsActive).
		Scan(&st.ID, &st.Name, &st.Address, &st.IsActive, &st.Created)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// GetStudio возвращает студию по ID.
func (s *Storage) GetStudio(ctx context.Context, id string) (*models.Studio, error) {
	const op = "storage.GetStudio"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, name, address, is_active, created
			  FROM studios WHERE id = $1 AND NOT is_removed`
	var st models.Studio
	err := s.conn(ctx).QueryRowContext(ctx, query, id).
		Scan(&st.ID, &st.Name, &st.Address, &st.IsActive, &st.Created)
	if err != nil {
		return nil, notFound(op, err)
	}
	return &st, nil
}

// ListStudios возвращает все студии.
func (s *Storage) ListStudios(ctx context.Context) ([]*models.Studio, error) {
	const op = "storage.ListStudios"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, address, is_active, created
			  FROM studios WHERE NOT is_removed
			  ORDER BY name, id`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Studio, 0)
	for rows.Next() {
		var st models.Studio
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.IsActive, &st.Created); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateRoom сохраняет зал студии.
func (s *Storage) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	const op = "storage.CreateRoom"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO rooms (studio_id, name, capacity, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, studio_id, name, capacity, is_active, created`
	var r models.Room
	err := s.conn(ctx).QueryRowContext(ctx, query, room.StudioID, room.Name, room.Capacity, room.IsActive).
		Scan(&r.ID, &r.StudioID, &r.Name, &r.Capacity, &r.IsActive, &r.Created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &r, nil
}

// GetRoom возвращает зал по ID.
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	const op = "storage.GetRoom"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, studio_id, name, capacity, is_active, created
			  FROM rooms WHERE id = $1 AND NOT is_removed`
	var r models.Room
	err := s.conn(ctx).QueryRowContext(ctx, query, id).
		Scan(&r.ID, &r.StudioID, &r.Name, &r.Capacity, &r.IsActive, &r.Created)
	if err != nil {
		return nil, notFound(op, err)
	}
	return &r, nil
}

// ListRooms возвращает все залы.
func (s *Storage) ListRooms(ctx context.Context) ([]*models.Room, error) {
	const op = "storage.ListRooms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, studio_id, name, capacity, is_active, created
			  FROM rooms WHERE NOT is_removed
			  ORDER BY name, id`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Room, 0)
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.StudioID, &r.Name, &r.Capacity, &r.IsActive, &r.Created); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

const scheduleColumns = `s.id, s.instructor_id, s.room_id, s.start_time, s.duration_minutes,
	s.status, s.created, s.modified`

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	var sc models.Schedule
	if err := row.Scan(&sc.ID, &sc.InstructorID, &sc.RoomID, &sc.StartTime,
		&sc.DurationMinutes, &sc.Status, &sc.Created, &sc.Modified); err != nil {
		return nil, err
	}
	return &sc, nil
}

// CreateSchedule сохраняет занятие в расписании.
func (s *Storage) CreateSchedule(ctx context.Context, sc models.Schedule) (*models.Schedule, error) {
	const op = "storage.CreateSchedule"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO schedules AS s (instructor_id, room_id, start_time, duration_minutes, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + scheduleColumns
	created, err := scanSchedule(s.conn(ctx).QueryRowContext(ctx, query,
		sc.InstructorID, sc.RoomID, sc.StartTime, sc.DurationMinutes, sc.Status))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetSchedule возвращает занятие по ID.
func (s *Storage) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	const op = "storage.GetSchedule"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + scheduleColumns + `
			  FROM schedules s
			  WHERE s.id = $1 AND NOT s.is_removed`
	sc, err := scanSchedule(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(op, err)
	}
	return sc, nil
}

// ListSchedules возвращает занятия, упорядоченные по времени начала,
// с необязательными фильтрами по началу, имени инструктора и названию зала.
func (s *Storage) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error) {
	const op = "storage.ListSchedules"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		conds = []string{"NOT s.is_removed"}
		args  []any
	)
	if filter.StartFrom != nil {
		args = append(args, *filter.StartFrom)
		conds = append(conds, "s.start_time >= $"+strconv.Itoa(len(args)))
	}
	if filter.InstructorUsername != "" {
		args = append(args, filter.InstructorUsername)
		conds = append(conds, "a.username ILIKE '%' || $"+strconv.Itoa(len(args))+" || '%'")
	}
	if filter.RoomName != "" {
		args = append(args, filter.RoomName)
		conds = append(conds, "r.name ILIKE '%' || $"+strconv.Itoa(len(args))+" || '%'")
	}

	query := `SELECT ` + scheduleColumns + `
			  FROM schedules s
			  JOIN instructors i ON i.id = s.instructor_id
			  JOIN accounts a ON a.id = i.account_id
			  JOIN rooms r ON r.id = s.room_id
			  WHERE ` + strings.Join(conds, " AND ") + `
			  ORDER BY s.start_time, s.id`
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Schedule, 0)
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
