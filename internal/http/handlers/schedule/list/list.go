// Package list реализует HTTP-обработчик выборки расписания с фильтрами.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы расписания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки расписания.
type Service interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расписание
// @Description Занятия по возрастанию времени начала.
// @Tags Schedules
// @Produce  json
// @Param start_time query string false "Не раньше (RFC3339)"
// @Param instructor query string false "Часть имени пользователя инструктора"
// @Param room query string false "Часть названия зала"
// @Success 200 {object} response.Response "Список занятий"
// @Failure 400 {object} response.ErrorResponse "Некорректный start_time"
// @Router /schedules [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.ScheduleFilter{
		InstructorUsername: q.Get("instructor"),
		RoomName:           q.Get("room"),
	}
	if raw := q.Get("start_time"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Warn("invalid start_time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("start_time must be in RFC3339 format"))
			return
		}
		from = from.UTC()
		filter.StartFrom = &from
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list schedules", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(list))
}
