package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // NOTIFY_TIMEZONE must resolve in minimal containers

	"dental-smile-backend/config"
	_ "dental-smile-backend/docs" // Important for Swagger
	v1 "dental-smile-backend/internal/delivery/http/v1"
	"dental-smile-backend/internal/usecase"
	"dental-smile-backend/pkg/email"
	"dental-smile-backend/pkg/logger"
	"dental-smile-backend/pkg/telegram"
	"dental-smile-backend/pkg/validation"
)

// @title           Dental Smile Contact API
// @version         1.0
// @description     Fans website contact-form submissions out to email and Telegram.
// @host            localhost:3001
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logCloser := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	})
	defer logCloser.Close()

	// 3. Setup Channels
	emailSender := email.NewSender(cfg)
	if !emailSender.IsConfigured() {
		logger.Log.Warn("Email channel not configured - submissions will rely on Telegram", "provider", emailSender.Provider())
	}
	telegramNotifier := telegram.NewNotifier(cfg)
	if !telegramNotifier.IsConfigured() {
		logger.Log.Warn("Telegram channel not configured - submissions will rely on email")
	}

	// 4. Setup UseCases
	contactUC := usecase.NewContactUsecase(emailSender, telegramNotifier, validation.New(), usecase.ContactOptions{
		SiteName:       cfg.SiteName,
		ChannelTimeout: cfg.ChannelTimeout,
		Location:       cfg.Location(),
		Logger:         logger.Log,
	})
	healthUC := usecase.NewHealthUsecase(time.Now)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
		Logger:    logger.Log,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running",
			"port", cfg.Port,
			"email_configured", emailSender.IsConfigured(),
			"email_provider", emailSender.Provider(),
			"telegram_configured", telegramNotifier.IsConfigured(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Allow in-flight dispatches to finish their channel sends.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ChannelTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
