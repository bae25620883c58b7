// Package read реализует HTTP-обработчик получения студии по ID.
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

// Handler обрабатывает запрос студии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения студии.
type Service interface {
	GetStudio(ctx context.Context, id string) (*models.Studio, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Студия по ID
// @Tags Studios
// @Produce  json
// @Param id path string true "ID студии"
// @Success 200 {object} response.Response "Студия"
// @Failure 404 {object} response.ErrorResponse "Не найдена"
// @Router /studios/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.studio.read"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("studio_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studio, err := h.service.GetStudio(r.Context(), id)
	if err != nil {
		log.Warn("failed to get studio", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(studio))
}
