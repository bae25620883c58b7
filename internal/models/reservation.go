package models

import "time"

// ReservationStatus статус бронирования.
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "RESERVED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationAttended  ReservationStatus = "ATTENDED"
	ReservationMissed    ReservationStatus = "MISSED" // неявка
)

// Reservation бронирование участником места в расписании.
type Reservation struct {
	ID         string            `json:"id"`
	MemberID   string            `json:"member_id"`
	ScheduleID string            `json:"schedule_id"`
	Status     ReservationStatus `json:"status"`
	Notes      string            `json:"notes"`
	Created    time.Time         `json:"created"`
	Modified   time.Time         `json:"modified"`
}
