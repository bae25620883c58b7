package models

import "time"

// ScheduleStatus статус занятия в расписании.
type ScheduleStatus string

const (
	ScheduleDraft     ScheduleStatus = "draft"
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCanceled  ScheduleStatus = "canceled"
)

// Valid проверяет, что статус входит в допустимый набор.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleDraft, ScheduleScheduled, ScheduleCompleted, ScheduleCanceled:
		return true
	}
	return false
}

// DefaultDurationMinutes длительность занятия по умолчанию.
const DefaultDurationMinutes = 45

// Studio студия.
type Studio struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	IsActive bool      `json:"is_active"`
	Created  time.Time `json:"created"`
}

// Room зал студии.
type Room struct {
	ID       string    `json:"id"`
	StudioID string    `json:"studio_id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	IsActive bool      `json:"is_active"`
	Created  time.Time `json:"created"`
}

// Schedule занятие в расписании: инструктор, зал и время.
type Schedule struct {
	ID              string         `json:"id"`
	InstructorID    string         `json:"instructor_id"`
	RoomID          string         `json:"room_id"`
	StartTime       time.Time      `json:"start_time"`
	DurationMinutes int            `json:"duration_minutes"`
	Status          ScheduleStatus `json:"status"`
	Created         time.Time      `json:"created"`
	Modified        time.Time      `json:"modified"`
}

// ScheduleFilter параметры выборки расписания.
type ScheduleFilter struct {
	StartFrom          *time.Time
	InstructorUsername string
	RoomName           string
}
