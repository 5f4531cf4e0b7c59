package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"billfold/internal/config"
	apphttp "billfold/internal/http"
	"billfold/internal/log"
	"billfold/internal/sms"
	"billfold/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	var st *store.Store
	if cfg.SeedDemoData {
		st = store.NewWithDemoData()
		logger.Info("Store initialized with demo data")
	} else {
		st = store.New()
		logger.Info("Store initialized empty")
	}

	var extractor sms.Extractor
	if cfg.GroqAPIKey != "" {
		extractor = sms.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
		logger.Info("SMS extraction enabled", "model", cfg.GroqModel)
	} else {
		logger.Info("SMS extraction disabled - no API key configured")
	}
	smsService := sms.NewService(st, extractor)

	server := apphttp.NewServer(st, smsService, logger)
	srv := server.NewHTTPServer(":" + cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("HTTP server failed", log.FieldError, err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
