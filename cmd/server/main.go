package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/app"
	"github.com/Freeeeeet/mentor_booking/internal/config"
	"github.com/Freeeeeet/mentor_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/mentor_booking/internal/notification"
	"github.com/Freeeeeet/mentor_booking/internal/repository"
	"github.com/Freeeeeet/mentor_booking/internal/repository/base"
	"github.com/Freeeeeet/mentor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции при старте
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	txManager := base.NewTxManager(pool)

	// Канал доставки уведомлений: Telegram, если настроен, иначе лог
	var sender notification.Sender
	if cfg.TelegramEnabled() {
		tgBot, err := bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		sender = notification.NewTelegramSender(tgBot, cfg.TelegramChatID)
	} else {
		logger.Warn("Telegram is not configured, notifications go to the log only")
		sender = notification.NewLogSender(logger)
	}

	queue := notification.NewQueue(sender, logger)
	queue.Start(ctx)
	defer queue.Stop()

	slotService := service.NewSlotService(slotRepo, settingsRepo, logger)
	bookingService := service.NewBookingService(
		slotRepo,
		bookingRepo,
		txManager,
		queue,
		logger,
		cfg.MeetingBaseURL,
	)

	scheduler := app.NewScheduler(bookingRepo, queue, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	handlers := httpapi.NewHandlers(slotService, bookingService, logger)
	router := httpapi.NewRouter(handlers, cfg.Environment)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
