package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"billfold/internal/amqp"
	"billfold/internal/config"
	"billfold/internal/log"
	"billfold/internal/reminder"
	"billfold/internal/store"
)

// demoUserID is the record set the worker scans. A multi-tenant deployment
// would run one dispatcher per store instead.
const demoUserID = 1

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentDispatcher)
	log.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	var st *store.Store
	if cfg.SeedDemoData {
		st = store.NewWithDemoData()
	} else {
		st = store.New()
	}

	var publisher reminder.Publisher
	var client *amqp.Client
	if cfg.AMQPURL != "" {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, falling back to log-only delivery", log.FieldError, err)
		} else {
			defer c.Close()
			client = c
			publisher = c
			logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - reminders will be logged only")
	}

	dispatcher := reminder.NewDispatcher(st, publisher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(ctx, demoUserID, cfg.ReminderInterval)
	})
	if client != nil {
		notifier := reminder.NewNotifier()
		g.Go(func() error {
			return client.ConsumeReminderDue(ctx, notifier.Handle)
		})
	}

	logger.Info("Dispatcher running", "interval", cfg.ReminderInterval)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
