// Package list реализует HTTP-обработчик списка студий.
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

// Handler обрабатывает запросы списка студий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки студий.
type Service interface {
	ListStudios(ctx context.Context) ([]*models.Studio, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список студий
// @Tags Studios
// @Produce  json
// @Success 200 {object} response.Response "Список студий"
// @Router /studios [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.studio.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studios, err := h.service.ListStudios(r.Context())
	if err != nil {
		log.Error("failed to list studios", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(studios))
}
