// Package models содержит доменные модели студии: учётные записи, профили,
// коды подтверждения, уведомления, расписания и бронирования.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Account представляет учётную запись, общую для всех ролей.
type Account struct {
	ID           string    // Уникальный идентификатор
	Email        string    // Электронная почта, уникальна
	Username     string    // Имя пользователя, совпадает с email при создании
	FirstName    string    // Имя
	LastName     string    // Фамилия
	PhoneNumber  string    // Номер телефона
	PasswordHash string    // bcrypt-хэш пароля
	IsActive     bool      // Становится true только после подтверждения кода
	Created      time.Time // Дата создания
	Modified     time.Time // Дата изменения
}

// ProfileData входные данные регистрации, из которых создаётся учётная запись.
type ProfileData struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
}

// AccountUpdate частичное обновление полей учётной записи. Поле со значением nil не меняется.
type AccountUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
}

// Empty сообщает, что обновлять нечего.
func (u AccountUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.PhoneNumber == nil
}
