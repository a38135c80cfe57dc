// Package main runs the live ingest service: it subscribes to the match
// event feed and writes shot events into PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"football-xg-lab/internal/config"
	"football-xg-lab/internal/feed"
	"football-xg-lab/internal/ingestion"
	"football-xg-lab/internal/logging"
	"football-xg-lab/internal/observability"
	"football-xg-lab/internal/storage"
	"football-xg-lab/internal/storage/memory"
	"football-xg-lab/internal/storage/migrations"
	pgstore "football-xg-lab/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	if cfg.FeedURL == "" {
		logger.Error("no feed url; set XGLAB_FEED_URL")
		os.Exit(1)
	}

	metrics := observability.NewMetrics("")

	// Metrics server
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Info("starting metrics server", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "error", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Graceful shutdown with a forced-exit escape hatch
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, initiating graceful shutdown", "signal", sig.String())
		cancel()

		select {
		case sig := <-sigCh:
			logger.Info("received second signal, forcing shutdown", "signal", sig.String())
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Error("graceful shutdown timed out, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err = runIngest(ctx, logger, metrics, cfg)

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func runIngest(ctx context.Context, logger *slog.Logger, metrics *observability.Metrics, cfg *config.Config) error {
	// Shot store: postgres when a DSN is configured, memory otherwise
	var shotStore storage.ShotStore = memory.NewShotStore()

	if cfg.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		shotStore = pgstore.NewShotStore(pool)
		logger.Info("using postgres shot store")
	} else {
		logger.Info("no postgres dsn configured, using memory shot store")
	}

	client, err := feed.NewClient(ctx, cfg.FeedURL, nil)
	if err != nil {
		return fmt.Errorf("connect to feed: %w", err)
	}
	defer client.Close()
	logger.Info("connected to feed", "endpoint", cfg.FeedURL)

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Source:       client,
		ShotStore:    shotStore,
		Metrics:      metrics,
		ReconnectsFn: client.Reconnects,
		Logger:       logger,
	})

	return runner.Run(ctx)
}
