// Package update реализует HTTP-обработчик частичного обновления инструктора.
//
// Меняются только переданные поля учётной записи.
package update

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

// Handler обрабатывает запросы обновления инструктора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс обновления инструктора.
type Service interface {
	UpdateInstructor(ctx context.Context, id string, upd models.AccountUpdate) (*models.Profile, error)
}

// Request тело запроса, все поля необязательны.
type Request struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=30"`
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
// @Summary Обновить инструктора
// @Tags Instructors
// @Accept  json
// @Produce  json
// @Param id path string true "ID инструктора"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Инструктор"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или email уже занят"
// @Failure 404 {object} response.ErrorResponse "Не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /instructors/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.instructor.update"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("instructor_id", id),
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

	p, err := h.service.UpdateInstructor(r.Context(), id, models.AccountUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		log.Warn("failed to update instructor", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("instructor updated")
	render.JSON(w, r, response.OKWithData(response.Profile(p)))
}
