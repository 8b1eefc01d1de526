package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finbud/internal/cache"
	"finbud/internal/config"
	"finbud/internal/core"
	apphttp "finbud/internal/http"
	applog "finbud/internal/log"
	"finbud/internal/mongodb"
	"finbud/internal/notify"
	"finbud/internal/realtime"
	"finbud/internal/services"
	"finbud/internal/storage"
)

func main() {
	// Load .env for local development; absent in production is fine.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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

	// Every mutation fans out to the websocket hub; AMQP joins when
	// configured so the report worker sees the same stream.
	hub := realtime.NewHub(logger.Logger)
	notifiers := notify.Multi{hub}
	if cfg.AMQPURL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	quizCache := cache.NewLRU[[]core.QuizQuestion](cfg.QuizCacheSize, cfg.QuizCacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Budgets:      services.NewBudgetService(ledger, notifiers),
		Transactions: services.NewTransactionService(ledger, notifiers),
		Assets:       services.NewAssetService(ledger),
		Debts:        services.NewDebtService(ledger),
		Quiz:         services.NewQuizService(ledger, quizCache),
		Categories:   ledger,
		Hub:          hub,
		Logger:       logger,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if removed := quizCache.CleanExpired(); removed > 0 {
					logger.Debug("Evicted expired quiz cache entries", "count", removed)
				}
			}
		}
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return nil
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
		return nil
	})

	logger.Info("Starting finbud server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// openLedger selects the persistence backend per DATA_BACKEND.
func openLedger(ctx context.Context, cfg *config.Config, logger *applog.Logger) (services.Ledger, func(), error) {
	switch cfg.DataBackend {
	case "mongo":
		repo, err := mongodb.NewRepository(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.EnsureSeed(ctx); err != nil {
			repo.Close(ctx)
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
