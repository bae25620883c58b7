package models

import "time"

// NotificationStatus статус доставки уведомления.
type NotificationStatus string

const (
	NotificationEnqueued      NotificationStatus = "enqueued"
	NotificationSent          NotificationStatus = "sent"
	NotificationUndeliverable NotificationStatus = "undeliverable"
)

// NotificationTransport канал доставки уведомления.
type NotificationTransport string

const (
	TransportMail  NotificationTransport = "mail"
	TransportSMS   NotificationTransport = "sms"
	TransportOther NotificationTransport = "other"
)

// Notification запись об исходящем сообщении и его статусе.
type Notification struct {
	ID        string                `json:"id"`
	AccountID string                `json:"user_id"`
	Subject   string                `json:"subject"`
	Message   string                `json:"message"`
	Status    NotificationStatus    `json:"status"`
	Transport NotificationTransport `json:"transport"`
	Attempts  int                   `json:"attempts"`
	LastError string                `json:"last_error,omitempty"`
	Provider  string                `json:"provider,omitempty"`
	Created   time.Time             `json:"created"`
	Modified  time.Time             `json:"modified"`
}

// DispatchBatch сообщение в очереди: все уведомления в статусе enqueued на момент публикации.
type DispatchBatch struct {
	Notifications []Notification `json:"notifications"`
}
