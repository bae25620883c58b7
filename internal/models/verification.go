package models

import "time"

// VerificationCode одноразовый код подтверждения с ограниченным сроком жизни.
type VerificationCode struct {
	ID           string
	Code         string
	AccountID    string
	HasConfirmed bool
	ExpiresAt    time.Time
	IsRemoved    bool // true, если код погашен
	Created      time.Time
	Modified     time.Time
}

// Usable сообщает, можно ли ещё погасить код в момент now.
func (c *VerificationCode) Usable(now time.Time) bool {
	return !c.HasConfirmed && !c.IsRemoved && c.ExpiresAt.After(now)
}
