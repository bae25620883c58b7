// Package middlewarectx содержит HTTP middleware API: проверку JWT токена
// доступа и ограничение частоты запросов по IP клиента.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/jwt"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Account ключ для идентификатора учётной записи из токена.
const Account Key = "account_id"

// TokenParser проверяет токен доступа.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет идентификатор учётной записи в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Authentication credentials were not provided."))
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), Account, claims.AccountID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountID возвращает идентификатор учётной записи, положенный JWTMiddleware.
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(Account).(string)
	return id, ok && id != ""
}
