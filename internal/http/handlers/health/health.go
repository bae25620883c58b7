// Package health реализует HTTP-обработчик проверки готовности API.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/adminstudio/internal/http/response"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

// Checker проверяет доступность зависимости.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler отвечает 200, если все зависимости доступны, иначе 503.
type Handler struct {
	log      *slog.Logger
	checkers map[string]Checker
}

// New создает новый Handler. checkers именованные зависимости для проверки.
func New(log *slog.Logger, checkers map[string]Checker) *Handler {
	return &Handler{
		log:      log,
		checkers: checkers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	status := make(map[string]string, len(h.checkers))
	healthy := true
	for name, c := range h.checkers {
		if err := c.Ping(r.Context()); err != nil {
			h.log.Error("dependency unavailable", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{Status: response.StatusError, Detail: "service unavailable", Data: status})
		return
	}
	render.JSON(w, r, response.OKWithData(status))
}
