// Package create реализует HTTP-обработчик добавления занятия в расписание.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы на создание занятия.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс создания занятия.
type Service interface {
	Create(ctx context.Context, sc models.Schedule) (*models.Schedule, error)
}

// Request тело запроса. Если duration_minutes не передан, используется 45.
type Request struct {
	InstructorID    string    `json:"instructor_id" validate:"required,uuid"`
	RoomID          string    `json:"room_id" validate:"required,uuid"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Status          string    `json:"status,omitempty"`
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
// @Summary Добавить занятие
// @Description Статус по умолчанию draft, длительность по умолчанию 45 минут.
// @Tags Schedules
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные занятия"
// @Success 201 {object} response.Response "Занятие создано"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /schedules [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.create"
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
	if req.StartTime.IsZero() {
		log.Warn("start_time is missing")
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field StartTime is a required field"))
		return
	}

	duration := models.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	sc, err := h.service.Create(r.Context(), models.Schedule{
		InstructorID:    req.InstructorID,
		RoomID:          req.RoomID,
		StartTime:       req.StartTime.UTC(),
		DurationMinutes: duration,
		Status:          models.ScheduleStatus(req.Status),
	})
	if err != nil {
		log.Warn("failed to create schedule", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("schedule created", slog.String("schedule_id", sc.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(sc))
}
