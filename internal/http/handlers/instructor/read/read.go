// Package read реализует HTTP-обработчик получения инструктора по ID.
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

// Handler обрабатывает запрос инструктора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения инструктора.
type Service interface {
	GetInstructor(ctx context.Context, id string) (*models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Инструктор по ID
// @Tags Instructors
// @Produce  json
// @Param id path string true "ID инструктора"
// @Success 200 {object} response.Response "Инструктор"
// @Failure 404 {object} response.ErrorResponse "Не найден"
// @Router /instructors/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.instructor.read"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("instructor_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p, err := h.service.GetInstructor(r.Context(), id)
	if err != nil {
		log.Warn("failed to get instructor", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(response.Profile(p)))
}
