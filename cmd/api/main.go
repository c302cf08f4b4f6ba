package main

import (
	"log"

	"woosync/internal/api"
	"woosync/internal/config"
	"woosync/internal/connectors/splash"
	"woosync/internal/database"
	"woosync/internal/logger"
	"woosync/internal/multilang"
	"woosync/internal/store"
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

	// Multilingual text handling
	ml, err := multilang.New(cfg.MultilangMode, cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		logger.Fatal("Failed to configure multilang: %v", err)
	}

	// Outbound commit notifications
	notifier := splash.NewKafkaNotifier(cfg.KafkaBrokers, cfg.CommitTopic, logger)
	defer notifier.Close()

	// Initialize API server
	server := api.New(cfg, logger, st, ml, notifier)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
