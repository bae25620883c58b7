// Package create реализует HTTP-обработчик бронирования места на занятии.
//
// Бронировать можно только от имени учётной записи из токена доступа.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы на создание бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Create(ctx context.Context, accountID, scheduleID, notes string) (*models.Reservation, error)
}

// Request тело запроса бронирования.
type Request struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	ScheduleID string `json:"schedule_id" validate:"required,uuid"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Забронировать место
// @Description Создаёт бронирование в статусе RESERVED. Профиль участника создаётся при первом бронировании.
// @Tags Reservations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные бронирования"
// @Success 201 {object} response.Response "Бронирование создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет токена доступа"
// @Failure 403 {object} response.ErrorResponse "Чужая учётная запись"
// @Failure 404 {object} response.ErrorResponse "Учётная запись или занятие не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /reservations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	accountID, ok := middlewarectx.AccountID(r.Context())
	if !ok || accountID != req.UserID {
		log.Warn("reservation for another account", slog.String("user_id", req.UserID))
		status, body := response.FromError(models.ErrForbidden)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	reservation, err := h.service.Create(r.Context(), req.UserID, req.ScheduleID, req.Notes)
	if err != nil {
		log.Error("failed to create reservation", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("reservation created", slog.String("reservation_id", reservation.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(reservation))
}
