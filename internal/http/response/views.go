package response

import (
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// AccountView учётная запись в ответе API, без хэша пароля.
type AccountView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	Created     time.Time `json:"created"`
}

// ProfileView профиль роли в ответе API.
type ProfileView struct {
	ID      string       `json:"id"`
	Role    models.Role  `json:"role"`
	Account *AccountView `json:"account,omitempty"`
	Created time.Time    `json:"created"`
}

// Account формирует AccountView.
func Account(a *models.Account) *AccountView {
	if a == nil {
		return nil
	}
	return &AccountView{
		ID:          a.ID,
		Email:       a.Email,
		Username:    a.Username,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		IsActive:    a.IsActive,
		Created:     a.Created,
	}
}

// Profile формирует ProfileView.
func Profile(p *models.Profile) ProfileView {
	return ProfileView{
		ID:      p.ID,
		Role:    p.Role,
		Account: Account(p.Account),
		Created: p.Created,
	}
}

// Profiles формирует список ProfileView.
func Profiles(list []*models.Profile) []ProfileView {
	views := make([]ProfileView, 0, len(list))
	for _, p := range list {
		views = append(views, Profile(p))
	}
	return views
}
