package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pizzahub/pizza-service/internal/api"
	"github.com/pizzahub/pizza-service/internal/api/metrics"
	"github.com/pizzahub/pizza-service/internal/infrastructure/db/mysql"
	"github.com/pizzahub/pizza-service/internal/infrastructure/db/redis"
	"github.com/pizzahub/pizza-service/internal/pkg/config"
	"github.com/pizzahub/pizza-service/pkg/logger"
)

// @title           Pizza Service API
// @version         1.0
// @description     Backend service for the pizza franchise.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Bootstrap(ctx, cfg.DB, cfg.Admin, logger.Component("database"))
	if err != nil {
		log.Fatal().Err(err).Msg("database bootstrap failed")
	}
	defer db.Close()

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	tracker := redis.NewActiveUserTracker(rdb, logger.Component("redis"))
	metrics.RegisterActiveDiners(tracker.Count)

	e := api.NewRouter(db, rdb, tracker, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("pizza service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
