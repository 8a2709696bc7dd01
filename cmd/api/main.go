package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hsm-gustavo/account-api/internal/api/routes"
	"github.com/hsm-gustavo/account-api/internal/config"
	"github.com/hsm-gustavo/account-api/internal/db"
	"github.com/hsm-gustavo/account-api/internal/logging"
	"github.com/hsm-gustavo/account-api/internal/mail"
)

// @title Account API
// @version 1.0
// @description User registration, login and profile API
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	openCtx, cancelOpen := context.WithTimeout(ctx, 15*time.Second)
	store, err := db.Open(openCtx, cfg.Store)
	cancelOpen()
	if err != nil {
		logger.Error(ctx, "unable to open user store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "user store ready", "driver", cfg.Store.Driver)

	notifier := mail.NewNotifier(mail.NewSender(cfg.Mail, logger), logger)

	router := routes.SetupRoutes(cfg, store, notifier)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starts server in a goroutine
	go func() {
		logger.Info(ctx, "server running", "port", cfg.Server.Port)
		err := server.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "error starting the server", "error", err)
			os.Exit(1)
		}
	}()

	// channel to capture quit signals (e.g. CTRL+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "error on server shutdown", "error", err)
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		logger.Warn(ctx, "pending verification emails abandoned", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error(ctx, "error closing user store", "error", err)
	}

	logger.Info(ctx, "server shut down successfully")
}
