// Package read реализует HTTP-обработчик получения занятия по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запрос занятия.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения занятия.
type Service interface {
	Get(ctx context.Context, id string) (*models.Schedule, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Занятие по ID
// @Tags Schedules
// @Produce  json
// @Param id path string true "ID занятия"
// @Success 200 {object} response.Response "Занятие"
// @Failure 404 {object} response.ErrorResponse "Не найдено"
// @Router /schedules/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.read"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("schedule_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sc, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Warn("failed to get schedule", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(sc))
}
