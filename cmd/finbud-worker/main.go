// The finbud-worker consumes the notification stream and appends created
// transactions to a Google Sheets export.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finbud/internal/config"
	applog "finbud/internal/log"
	"finbud/internal/mongodb"
	"finbud/internal/notify"
	"finbud/internal/services"
	gsheet "finbud/internal/sheets/google"
	"finbud/internal/storage"
	"finbud/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger, closeLedger, err := openLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer closeLedger()

	sheetsClient, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reportWorker := worker.NewReportWorker(ledger, ledger, sheetsClient)

	go func() {
		err := amqpClient.Consume(ctx, func(env *notify.Envelope) error {
			return reportWorker.HandleEnvelope(ctx, env)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	logger.Info("Worker stopped")
}

func openLedger(ctx context.Context, cfg *config.Config, logger *applog.Logger) (services.Ledger, func(), error) {
	switch cfg.DataBackend {
	case "mongo":
		repo, err := mongodb.NewRepository(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized MongoDB backend", "database", cfg.MongoDatabase)
		return repo, func() { repo.Close(context.Background()) }, nil
	default:
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return repo, func() { repo.Close() }, nil
	}
}
