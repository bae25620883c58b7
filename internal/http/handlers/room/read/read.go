// Package read реализует HTTP-обработчик получения зала по ID.
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

// Handler обрабатывает запрос зала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения зала.
type Service interface {
	GetRoom(ctx context.Context, id string) (*models.Room, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Зал по ID
// @Tags Studios
// @Produce  json
// @Param id path string true "ID зала"
// @Success 200 {object} response.Response "Зал"
// @Failure 404 {object} response.ErrorResponse "Не найден"
// @Router /rooms/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.read"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("room_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	room, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		log.Warn("failed to get room", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(room))
}
