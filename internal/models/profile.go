package models

import "time"

// Role роль профиля, привязанного к учётной записи.
type Role string

const (
	RoleMember     Role = "member"
	RoleRider      Role = "rider"
	RoleInstructor Role = "instructor"
)

// Valid проверяет, что роль известна.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleRider, RoleInstructor:
		return true
	}
	return false
}

// Profile ролевое расширение учётной записи (один профиль роли на аккаунт).
type Profile struct {
	ID        string
	Role      Role
	AccountID string
	Account   *Account
	Created   time.Time
	Modified  time.Time
}
