package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/adminstudio/internal/cache"
	"github.com/magabrotheeeer/adminstudio/internal/config"
	healthhandler "github.com/magabrotheeeer/adminstudio/internal/http/handlers/health"
	"github.com/magabrotheeeer/adminstudio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adminstudio/internal/lib/jwt"
	"github.com/magabrotheeeer/adminstudio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/migrations"
	"github.com/magabrotheeeer/adminstudio/internal/services/identity"
	"github.com/magabrotheeeer/adminstudio/internal/services/notification"
	"github.com/magabrotheeeer/adminstudio/internal/services/profile"
	"github.com/magabrotheeeer/adminstudio/internal/services/reservation"
	"github.com/magabrotheeeer/adminstudio/internal/services/schedule"
	"github.com/magabrotheeeer/adminstudio/internal/services/verification"
	"github.com/magabrotheeeer/adminstudio/internal/storage"
)

const (
	shutdownTimeout        = 15 * time.Second
	limiterCleanupInterval = time.Minute
)

// App HTTP API студии вместе с gRPC-эндпоинтом проверки здоровья.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	health     *health.Server
	grpcAddr   string
	limiter    *middlewarectx.IPRateLimiter
	logger     *slog.Logger
	db         *storage.Storage
	cache      *cache.Cache
	conn       *amqp.Connection
	ch         *amqp.Channel
}

// New поднимает подключения к PostgreSQL, Redis и RabbitMQ, применяет
// миграции и собирает сервисы.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.api.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues(), 0)
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	dispatcher := notification.New(db, rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange), logger)
	verifications := verification.New(db, dispatcher, verification.Config{
		CodeLength:          cfg.CodeLength,
		TTL:                 cfg.CodeTTL,
		MaxGenerateAttempts: cfg.MaxGenerateAttempts,
	}, collector, logger)
	identities := identity.New(db, cfg.PasswordEntropyBytes, logger)
	profiles := profile.New(db, identities, verifications, cfg.IssueForInstructors, collector, logger)
	reservations := reservation.New(db, profiles, collector, logger)
	schedules := schedule.New(db, cacheRedis, cfg.ScheduleTTL, logger)

	limiter := middlewarectx.NewIPRateLimiter(cfg.VerifyPerMinute, cfg.VerifyBurst)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Dependencies{
		Identities:    identities,
		Profiles:      profiles,
		Verifications: verifications,
		Reservations:  reservations,
		Schedules:     schedules,
		Tokens:        jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		VerifyLimiter: limiter,
		Checkers: map[string]healthhandler.Checker{
			"postgres": db,
			"redis":    cacheRedis,
		},
		Metrics: metrics.Handler(reg),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return &App{
		server:     srv,
		grpcServer: grpcServer,
		health:     healthServer,
		grpcAddr:   cfg.GRPCHealthAddress,
		limiter:    limiter,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		conn:       conn,
		ch:         ch,
	}, nil
}

// Run запускает HTTP и gRPC серверы и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	const op = "app.api.Run"

	lis, err := net.Listen("tcp", a.grpcAddr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go a.limiter.RunCleanup(ctx, limiterCleanupInterval)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("gRPC health server starting on", slog.String("address", a.grpcAddr))
		if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	a.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.logger.Info("shutting down HTTP server gracefully")
	a.health.Shutdown()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("failed to shutdown HTTP server", sl.Err(err))
	}
	a.grpcServer.GracefulStop()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
