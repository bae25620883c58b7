// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов, ошибок
// доменного слоя и сообщений валидации.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Detail: текст ошибки (при неуспехе).
// Поле Data: данные ответа (при успехе).
type Response struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Detail string `json:"detail" example:"invalid request body"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Detail: msg,
	}
}

// FromError переводит ошибку доменного слоя в HTTP-статус и тело ответа.
// Текст внутренних ошибок клиенту не отдаётся.
func FromError(err error) (int, ErrorResponse) {
	var (
		stateErr *models.InvalidStateError
		inputErr *models.InputError
	)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("Not found.")
	case errors.As(err, &stateErr):
		return http.StatusBadRequest, Error(stateErr.Reason)
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, Error(inputErr.Reason)
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, Error("Invalid input.")
	case errors.Is(err, models.ErrRejectedVerification):
		return http.StatusBadRequest, Error(models.ErrRejectedVerification.Error())
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusBadRequest, Error("Already exists.")
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, Error("You do not have permission to perform this action.")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("invalid credentials")
	case errors.Is(err, models.ErrInactiveAccount):
		return http.StatusForbidden, Error("Account is not verified.")
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "min", "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too small", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Detail: strings.Join(errsMsgs, ", "),
	}
}
