package models

import "errors"

var (
	// ErrNotFound сущность с указанным идентификатором не существует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrRejectedVerification единый ответ на любую неудачную проверку кода.
	// Причина (неверный код, истёк, уже погашен, неизвестный id) не раскрывается.
	ErrRejectedVerification = errors.New("invalid or expired verification code")
	// ErrInvalidInput некорректные входные данные доменной операции.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden операция над чужой сущностью.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials неверная пара email/пароль. Не раскрывает,
	// существует ли учётная запись.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactiveAccount учётная запись ещё не подтверждена.
	ErrInactiveAccount = errors.New("account is not active")
)

// InvalidStateError операция недопустима в текущем состоянии сущности.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// InputError ошибка валидации входных данных с текстом для клиента.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// Unwrap позволяет проверять InputError через errors.Is(err, ErrInvalidInput).
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
