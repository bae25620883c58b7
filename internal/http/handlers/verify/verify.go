// Package verify реализует HTTP-обработчик подтверждения учётной записи кодом.
//
// При успехе учётная запись активируется и в ответе выдаётся токен доступа.
// Любая неудача проверки кода возвращает одинаковый ответ 400.
package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Handler обрабатывает запросы подтверждения кода.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokens   TokenMaker
	validate *validator.Validate
}

// Service описывает интерфейс проверки кода.
type Service interface {
	Validate(ctx context.Context, verificationID, code string) (*models.Account, error)
}

// TokenMaker выпускает токен доступа.
type TokenMaker interface {
	GenerateToken(accountID, email string) (string, error)
}

// Request тело запроса подтверждения.
type Request struct {
	Code string `json:"code" validate:"required,max=32"`
}

// Result данные успешного ответа.
type Result struct {
	AccountID   string `json:"account_id"`
	AccessToken string `json:"access_token"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, tokens TokenMaker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить учётную запись
// @Description Погашает код подтверждения и активирует учётную запись.
// @Tags Verification
// @Accept  json
// @Produce  json
// @Param verification_id path string true "ID кода подтверждения"
// @Param request body Request true "Код"
// @Success 200 {object} response.Response "Учётная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Неверный или истёкший код"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /verifications/{verification_id}/verify [patch]
// @Router /verifications/{verification_id}/verify [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verify"
	verificationID := chi.URLParam(r, "verification_id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("verification_id", verificationID),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	account, err := h.service.Validate(r.Context(), verificationID, req.Code)
	if err != nil {
		log.Warn("verification failed", sl.Err(err))
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

	log.Info("account verified", slog.String("account_id", account.ID))
	render.JSON(w, r, response.OKWithData(Result{
		AccountID:   account.ID,
		AccessToken: token,
	}))
}
