// Package list реализует HTTP-обработчик списка залов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы списка залов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки залов.
type Service interface {
	ListRooms(ctx context.Context) ([]*models.Room, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список залов
// @Tags Studios
// @Produce  json
// @Success 200 {object} response.Response "Список залов"
// @Router /rooms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		log.Error("failed to list rooms", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(rooms))
}
