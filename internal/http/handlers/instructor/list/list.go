// Package list реализует HTTP-обработчик списка инструкторов.
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

// Handler обрабатывает запросы списка инструкторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки инструкторов.
type Service interface {
	ListInstructors(ctx context.Context) ([]*models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список инструкторов
// @Tags Instructors
// @Produce  json
// @Success 200 {object} response.Response "Инструкторы"
// @Router /instructors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.instructor.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListInstructors(r.Context())
	if err != nil {
		log.Error("failed to list instructors", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(response.Profiles(list)))
}
