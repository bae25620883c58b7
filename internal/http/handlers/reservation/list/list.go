// Package list реализует HTTP-обработчик выборки активных бронирований
// участника на занятие.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы списка бронирований.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс выборки бронирований.
type Service interface {
	ListActive(ctx context.Context, memberID, scheduleID string) ([]*models.Reservation, error)
}

// Query параметры запроса.
type Query struct {
	MemberID   string `validate:"required,uuid"`
	ScheduleID string `validate:"required,uuid"`
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
// @Summary Активные бронирования
// @Description Бронирования участника на занятие в статусе RESERVED.
// @Tags Reservations
// @Produce  json
// @Security BearerAuth
// @Param member_id query string true "ID участника"
// @Param schedule_id query string true "ID занятия"
// @Success 200 {object} response.Response "Список бронирований"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /reservations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := Query{
		MemberID:   r.URL.Query().Get("member_id"),
		ScheduleID: r.URL.Query().Get("schedule_id"),
	}
	if err := h.validate.Struct(q); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	list, err := h.service.ListActive(r.Context(), q.MemberID, q.ScheduleID)
	if err != nil {
		log.Error("failed to list reservations", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(list))
}
