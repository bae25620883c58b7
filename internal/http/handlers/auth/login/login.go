// Package login реализует HTTP-обработчик входа по email и паролю.
//
// Токен доступа выдаётся только подтверждённой учётной записи. Неизвестный email
// и неверный пароль дают одинаковый ответ 401.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Request структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// Result данные успешного ответа.
type Result struct {
	AccountID   string `json:"account_id"`
	AccessToken string `json:"access_token"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokens   TokenMaker
	validate *validator.Validate
}

// Service проверяет учётные данные.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
}

// TokenMaker выпускает токен доступа.
type TokenMaker interface {
	GenerateToken(accountID, email string) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, tokens TokenMaker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход
// @Description Проверяет email и пароль подтверждённой учётной записи и выдаёт JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Учётная запись не подтверждена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	account, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	token, err := h.tokens.GenerateToken(account.ID, account.Email)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", slog.String("account_id", account.ID))
	render.JSON(w, r, response.OKWithData(Result{
		AccountID:   account.ID,
		AccessToken: token,
	}))
}
