package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tasko-app/tasko-api/internal/api"
	"github.com/tasko-app/tasko-api/internal/core/service"
	"github.com/tasko-app/tasko-api/internal/infrastructure/config"
	mongodb "github.com/tasko-app/tasko-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tasko-app/tasko-api/internal/infrastructure/db/redis"
	"github.com/tasko-app/tasko-api/internal/infrastructure/mail"
	"github.com/tasko-app/tasko-api/internal/infrastructure/queue"
	"github.com/tasko-app/tasko-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	pendingRepo := mongodb.NewPendingRepository(db)
	resetRepo := mongodb.NewResetRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	for name, ensure := range map[string]func(context.Context) error{
		"users":                 userRepo.EnsureIndexes,
		"pending_registrations": pendingRepo.EnsureIndexes,
		"password_resets":       resetRepo.EnsureIndexes,
		"tasks":                 taskRepo.EnsureIndexes,
		"notifications":         notificationRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		TLS:      cfg.SMTP.TLS,
		From:     cfg.SMTP.From,
		BaseURL:  cfg.SMTP.BaseURL,
	}, logger.Component("mailer"))
	if err != nil {
		log.Fatal().Err(err).Msg("mailer setup failed")
	}

	accounts := service.NewAccountService(
		userRepo, pendingRepo, resetRepo, sessions, mailer,
		cfg.SessionTTL, logger.Component("accounts"),
	)
	notifications := service.NewNotificationService(notificationRepo, logger.Component("notifications"))

	dispatcher := queue.NewDispatcher(0, notifications, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	tasks := service.NewTaskService(taskRepo, dispatcher, logger.Component("tasks"))

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		Accounts:      accounts,
		Tasks:         tasks,
		Notifications: notifications,
		SessionTTL:    cfg.SessionTTL,
		Mongo:         db,
		Redis:         rdb,
		Log:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
