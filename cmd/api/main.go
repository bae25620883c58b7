// Package main содержит точку входа HTTP API студии.
//
// @title AdminStudio API
// @version 1.0
// @description Регистрация участников и инструкторов, подтверждение кодов, расписание и бронирования.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/magabrotheeeer/adminstudio/docs"
	"github.com/magabrotheeeer/adminstudio/internal/app/api"
	"github.com/magabrotheeeer/adminstudio/internal/config"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env)

	logger.Info("starting adminstudio api", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := api.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize api app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("api app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("api app stopped gracefully")
}
