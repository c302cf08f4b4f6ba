package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"woosync/internal/config"
	"woosync/internal/connectors/splash"
	"woosync/internal/database"
	"woosync/internal/logger"
	"woosync/internal/multilang"
	"woosync/internal/services/variants"
	"woosync/internal/store"
	"woosync/internal/worker"
	"woosync/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	st := store.NewGorm(db.DB)

	ml, err := multilang.New(cfg.MultilangMode, cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		logger.Fatal("Failed to configure multilang: %v", err)
	}

	notifier := splash.NewKafkaNotifier(cfg.KafkaBrokers, cfg.CommitTopic, logger)
	defer notifier.Close()

	products := variants.NewService(st, ml, logger, notifier)
	reconciler := variants.NewReconciler(st, ml, logger, products)
	productObj := splash.NewProductObject(st, ml, logger, products, reconciler, notifier)

	processor := processors.NewEventProcessor(logger, productObj)

	// Start worker
	w := worker.New(cfg, logger, processor)
	go w.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	w.Stop()
}
