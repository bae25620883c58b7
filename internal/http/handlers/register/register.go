// Package register реализует HTTP-обработчик регистрации профиля роли
// (участник, райдер, инструктор).
//
// Handler находит или создаёт учётную запись по email и профиль роли.
// Новый профиль возвращается со статусом 201, уже существующий со статусом 200.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы регистрации профиля одной роли.
type Handler struct {
	log      *slog.Logger
	service  Service
	role     models.Role
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	GetOrCreate(ctx context.Context, role models.Role, data models.ProfileData) (*models.Profile, bool, error)
}

// Request тело запроса регистрации.
type Request struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Password    string `json:"password" validate:"max=72"`
}

// New создает новый Handler для роли role.
func New(log *slog.Logger, service Service, role models.Role) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		role:     role,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация профиля
// @Description Находит или создаёт учётную запись по email и профиль роли. Новому участнику или райдеру отправляется код подтверждения.
// @Tags Registration
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 201 {object} response.Response "Профиль создан"
// @Success 200 {object} response.Response "Профиль уже существует"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /members/register [post]
// @Router /riders/register [post]
// @Router /instructors/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("role", string(h.role)),
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

	profile, created, err := h.service.GetOrCreate(r.Context(), h.role, models.ProfileData{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		log.Error("failed to register profile", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("profile registered", slog.String("profile_id", profile.ID), slog.Bool("created", created))
	if created {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, response.OKWithData(response.Profile(profile)))
}
