// Package cancel реализует HTTP-обработчик отмены бронирования.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы на отмену бронирования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отмены бронирования.
type Service interface {
	Cancel(ctx context.Context, reservationID, accountID string) (*models.Reservation, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить бронирование
// @Description Переводит бронирование из RESERVED в CANCELLED.
// @Tags Reservations
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID бронирования"
// @Success 200 {object} response.Response "Бронирование отменено"
// @Failure 400 {object} response.ErrorResponse "Бронирование не в статусе RESERVED"
// @Failure 403 {object} response.ErrorResponse "Чужое бронирование"
// @Failure 404 {object} response.ErrorResponse "Бронирование не найдено"
// @Router /reservations/{id}/cancel [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.cancel"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("reservation_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountID, ok := middlewarectx.AccountID(r.Context())
	if !ok {
		log.Warn("account not found in context")
		status, body := response.FromError(models.ErrForbidden)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), id, accountID)
	if err != nil {
		log.Warn("failed to cancel reservation", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("reservation cancelled")
	render.JSON(w, r, response.OKWithData(reservation))
}
