// Package sender собирает процесс отправки уведомлений: потребитель очереди
// пакетов и цепочка почтовых транспортов.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/adminstudio/internal/config"
	"github.com/magabrotheeeer/adminstudio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/lib/smtp"
	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	senderservice "github.com/magabrotheeeer/adminstudio/internal/services/sender"
	"github.com/magabrotheeeer/adminstudio/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// App процесс отправки уведомлений.
type App struct {
	metricsServer *http.Server
	conn          *amqp.Connection
	ch            *amqp.Channel
	db            *storage.Storage
	senderService *senderservice.Service
	workers       int
	logger        *slog.Logger
}

// New подключается к PostgreSQL и RabbitMQ и собирает транспорты из notification.providers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transports, err := smtp.NewTransports(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	chain := make([]senderservice.Transport, 0, len(transports))
	for _, t := range transports {
		chain = append(chain, t)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues(), cfg.Prefetch)
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	senderService := senderservice.New(db, chain, senderservice.Config{
		MaxAttempts: cfg.MaxAttempts,
		SendTimeout: cfg.SendTimeout,
	}, metrics.NewCollector(reg), logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	return &App{
		metricsServer: &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: cfg.TimeoutHTTP,
		},
		conn:          conn,
		ch:            ch,
		db:            db,
		senderService: senderService,
		workers:       cfg.Prefetch,
		logger:        logger,
	}, nil
}

// Run обрабатывает пакеты уведомлений до отмены ctx. Если брокер закрыл канал
// доставки, Run завершается с ошибкой, чтобы процесс перезапустился и
// переподключился.
func (a *App) Run(ctx context.Context) error {
	const op = "app.sender.Run"

	consumer, err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.DispatchQueue, a.workers, a.logger, a.senderService.HandleBatch)
	if err != nil {
		a.logger.Error("failed to start dispatch consumer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Info("sender started", slog.String("queue", rabbitmq.DispatchQueue), slog.Int("workers", a.workers))

	go func() {
		a.logger.Info("metrics server starting on", slog.String("address", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()

	runErr := waitConsumer(ctx, consumer)
	if runErr != nil {
		a.logger.Error("dispatch consumer stopped", sl.Err(runErr))
	} else {
		a.logger.Info("Sender service shutting down gracefully")
	}
	consumer.Wait()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.metricsServer.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("failed to shutdown metrics server", sl.Err(err))
	}

	if err := a.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", op, runErr)
	}
	return nil
}

// stoppable потребитель, остановку которого ждёт Run.
type stoppable interface {
	Done() <-chan struct{}
	Err() error
}

// waitConsumer блокируется до отмены ctx или до остановки потребителя.
// Возвращает nil при отмене ctx и ошибку потребителя иначе.
func waitConsumer(ctx context.Context, c stoppable) error {
	select {
	case <-ctx.Done():
		return nil
	case <-c.Done():
		if ctx.Err() != nil {
			return nil
		}
		return c.Err()
	}
}
