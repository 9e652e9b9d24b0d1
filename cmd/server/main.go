package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/holidaydesk/vacation-system/internal/api"
	"github.com/holidaydesk/vacation-system/internal/core/service"
	"github.com/holidaydesk/vacation-system/internal/infrastructure/config"
	mongodb "github.com/holidaydesk/vacation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/holidaydesk/vacation-system/internal/infrastructure/db/redis"
	"github.com/holidaydesk/vacation-system/internal/infrastructure/queue"
	"github.com/holidaydesk/vacation-system/pkg/logger"
)

// @title        Vacation System API
// @version      1.0
// @description  Employee vacation request management: collaborators submit date ranges, managers approve or reject them.
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
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting vacation system")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Core wiring ---
	tokenStore := redisdb.NewTokenStore(rdb, cfg.Redis.TokenKey, cfg.TokenTTL)
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL)

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	vacationRepo := mongodb.NewVacationRepository(db)
	vacationService := service.NewVacationService(vacationRepo, audit, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:     authService,
		VacationService: vacationService,
		Mongo:           db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Logger:          log,
	})

	// --- Serve ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
