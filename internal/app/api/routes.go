// Package api собирает HTTP API студии: маршруты, зависимости и сервер.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/adminstudio/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/adminstudio/internal/http/handlers/health"
	instructorlist "github.com/magabrotheeeer/adminstudio/internal/http/handlers/instructor/list"
	instructorread "github.com/magabrotheeeer/adminstudio/internal/http/handlers/instructor/read"
	instructorupdate "github.com/magabrotheeeer/adminstudio/internal/http/handlers/instructor/update"
	"github.com/magabrotheeeer/adminstudio/internal/http/handlers/register"
	reservationcancel "github.com/magabrotheeeer/adminstudio/internal/http/handlers/reservation/cancel"
	reservationcreate "github.com/magabrotheeeer/adminstudio/internal/http/handlers/reservation/create"
	reservationlist "github.com/magabrotheeeer/adminstudio/internal/http/handlers/reservation/list"
	roomcreate "github.com/magabrotheeeer/adminstudio/internal/http/handlers/room/create"
	roomlist "github.com/magabrotheeeer/adminstudio/internal/http/handlers/room/list"
	roomread "github.com/magabrotheeeer/adminstudio/internal/http/handlers/room/read"
	schedulecreate "github.com/magabrotheeeer/adminstudio/internal/http/handlers/schedule/create"
	schedulelist "github.com/magabrotheeeer/adminstudio/internal/http/handlers/schedule/list"
	scheduleread "github.com/magabrotheeeer/adminstudio/internal/http/handlers/schedule/read"
	studiocreate "github.com/magabrotheeeer/adminstudio/internal/http/handlers/studio/create"
	studiolist "github.com/magabrotheeeer/adminstudio/internal/http/handlers/studio/list"
	studioread "github.com/magabrotheeeer/adminstudio/internal/http/handlers/studio/read"
	"github.com/magabrotheeeer/adminstudio/internal/http/handlers/verify"
	"github.com/magabrotheeeer/adminstudio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adminstudio/internal/lib/jwt"
	"github.com/magabrotheeeer/adminstudio/internal/models"
	identityservice "github.com/magabrotheeeer/adminstudio/internal/services/identity"
	profileservice "github.com/magabrotheeeer/adminstudio/internal/services/profile"
	reservationservice "github.com/magabrotheeeer/adminstudio/internal/services/reservation"
	scheduleservice "github.com/magabrotheeeer/adminstudio/internal/services/schedule"
	verificationservice "github.com/magabrotheeeer/adminstudio/internal/services/verification"
)

// Dependencies сервисы и инфраструктура, из которых собираются маршруты.
type Dependencies struct {
	Identities    *identityservice.Service
	Profiles      *profileservice.Service
	Verifications *verificationservice.Service
	Reservations  *reservationservice.Service
	Schedules     *scheduleservice.Service
	Tokens        *jwt.MakerImpl
	VerifyLimiter *middlewarectx.IPRateLimiter
	Checkers      map[string]health.Checker
	Metrics       http.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Dependencies) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Регистрация и подтверждение
		r.Post("/members/register", register.New(logger, deps.Profiles, models.RoleMember).ServeHTTP)
		r.Post("/riders/register", register.New(logger, deps.Profiles, models.RoleRider).ServeHTTP)
		r.Post("/instructors/register", register.New(logger, deps.Profiles, models.RoleInstructor).ServeHTTP)

		verifyHandler := verify.New(logger, deps.Verifications, deps.Tokens)
		r.Group(func(r chi.Router) {
			r.Use(deps.VerifyLimiter.Middleware(logger))
			r.Patch("/verifications/{verification_id}/verify", verifyHandler.ServeHTTP)
			r.Put("/verifications/{verification_id}/verify", verifyHandler.ServeHTTP)
			r.Post("/auth/login", login.New(logger, deps.Identities, deps.Tokens).ServeHTTP)
		})

		// Студии, залы и расписание
		r.Post("/studios", studiocreate.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/studios", studiolist.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/studios/{id}", studioread.New(logger, deps.Schedules).ServeHTTP)
		r.Post("/studios/{id}/rooms", roomcreate.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/rooms", roomlist.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/rooms/{id}", roomread.New(logger, deps.Schedules).ServeHTTP)
		r.Post("/schedules", schedulecreate.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/schedules", schedulelist.New(logger, deps.Schedules).ServeHTTP)
		r.Get("/schedules/{id}", scheduleread.New(logger, deps.Schedules).ServeHTTP)

		r.Get("/instructors", instructorlist.New(logger, deps.Profiles).ServeHTTP)
		r.Get("/instructors/{id}", instructorread.New(logger, deps.Profiles).ServeHTTP)
		r.Patch("/instructors/{id}", instructorupdate.New(logger, deps.Profiles).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))
			r.Post("/reservations", reservationcreate.New(logger, deps.Reservations).ServeHTTP)
			r.Get("/reservations", reservationlist.New(logger, deps.Reservations).ServeHTTP)
			r.Patch("/reservations/{id}/cancel", reservationcancel.New(logger, deps.Reservations).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, deps.Checkers).ServeHTTP)
	r.Handle("/metrics", deps.Metrics)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
