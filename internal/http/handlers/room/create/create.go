// Package create реализует HTTP-обработчик добавления зала в студию.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы на создание зала.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс создания зала.
type Service interface {
	CreateRoom(ctx context.Context, room models.Room) (*models.Room, error)
}

// Request тело запроса.
type Request struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"min=1"`
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
// @Summary Добавить зал
// @Tags Studios
// @Accept  json
// @Produce  json
// @Param id path string true "ID студии"
// @Param request body Request true "Данные зала"
// @Success 201 {object} response.Response "Зал создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Студия не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /studios/{id}/rooms [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.create"
	studioID := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("studio_id", studioID),
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

	room, err := h.service.CreateRoom(r.Context(), models.Room{
		StudioID: studioID,
		Name:     req.Name,
		Capacity: req.Capacity,
		IsActive: true,
	})
	if err != nil {
		log.Warn("failed to create room", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("room created", slog.String("room_id", room.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(room))
}
