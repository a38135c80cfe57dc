// Package main runs the offline pipeline over cached raw data.
// Executes: flatten -> derive -> aggregate -> report, all on memory stores.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"football-xg-lab/internal/features"
	"football-xg-lab/internal/feed"
	"football-xg-lab/internal/flatten"
	"football-xg-lab/internal/logging"
	"football-xg-lab/internal/observability"
	"football-xg-lab/internal/reporting"
	"football-xg-lab/internal/storage/memory"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory with cached raw responses")
	shotsFile := flag.String("shots-file", "", "JSON file with recorded shot frames (optional)")
	outputDir := flag.String("output-dir", "reports", "Output directory for generated files")
	metricsAddr := flag.String("metrics-addr", "", "Address for /metrics during the run (empty disables)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(*logLevel)

	// Counters are scrapeable while the pipeline runs
	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, cancelling pipeline", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, logger, *dataDir, *shotsFile, *outputDir); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	logger.Info("starting metrics server", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server", "error", err)
	}
}

func run(ctx context.Context, logger *slog.Logger, dataDir, shotsFile, outputDir string) error {
	runID := uuid.NewString()
	logger.Info("starting pipeline run", "run_id", runID, "data_dir", dataDir)

	m := observability.NewMetrics("")

	fixtureStore := memory.NewFixtureStore()
	playerStatStore := memory.NewPlayerStatStore()
	shotStore := memory.NewShotStore()
	featureStore := memory.NewShotFeatureStore()

	// 1. Flatten fixtures
	start := time.Now()
	fixtureFiles, err := filepath.Glob(filepath.Join(dataDir, "fixtures_league_*.json"))
	if err != nil {
		return err
	}
	fixtureCount := 0
	for _, path := range fixtureFiles {
		fixtures, err := flatten.ProcessFixtureFile(path)
		if err != nil {
			return fmt.Errorf("flatten %s: %w", filepath.Base(path), err)
		}
		if err := fixtureStore.InsertBulk(ctx, fixtures); err != nil {
			return fmt.Errorf("store fixtures from %s: %w", filepath.Base(path), err)
		}
		fixtureCount += len(fixtures)
	}
	m.FixturesFlattened.Add(float64(fixtureCount))
	m.PipelineDuration.WithLabelValues("flatten_fixtures").Observe(time.Since(start).Seconds())
	logger.Info("fixtures flattened", "files", len(fixtureFiles), "fixtures", fixtureCount)

	// 2. Flatten player statistics
	start = time.Now()
	flattener := flatten.NewPlayerFlattener(flatten.DefaultConfig())
	playerFiles, err := filepath.Glob(filepath.Join(dataDir, "players_fixture_*.json"))
	if err != nil {
		return err
	}
	playerCount := 0
	for _, path := range playerFiles {
		rows, err := flattener.ProcessPlayerFile(path)
		if err != nil {
			return fmt.Errorf("flatten %s: %w", filepath.Base(path), err)
		}
		if err := playerStatStore.InsertBulk(ctx, rows); err != nil {
			return fmt.Errorf("store player rows from %s: %w", filepath.Base(path), err)
		}
		playerCount += len(rows)
	}
	m.PlayersFlattened.Add(float64(playerCount))
	m.PipelineDuration.WithLabelValues("flatten_players").Observe(time.Since(start).Seconds())
	logger.Info("player statistics flattened", "files", len(playerFiles), "rows", playerCount)

	// 3. Load recorded shots and derive features
	if shotsFile != "" {
		start = time.Now()
		shotCount, err := loadShots(ctx, shotStore, shotsFile)
		if err != nil {
			return fmt.Errorf("load shots: %w", err)
		}
		logger.Info("shots loaded", "shots", shotCount)

		fixtureIDs, err := shotStore.FixtureIDs(ctx)
		if err != nil {
			return err
		}
		runner := features.NewRunner(shotStore, featureStore)
		if err := runner.DeriveFixtures(ctx, fixtureIDs); err != nil {
			return fmt.Errorf("derive features: %w", err)
		}

		derived, err := featureStore.GetAll(ctx)
		if err != nil {
			return err
		}
		m.FeaturesDerived.Add(float64(len(derived)))
		m.PipelineDuration.WithLabelValues("derive").Observe(time.Since(start).Seconds())
		logger.Info("features derived", "fixtures", len(fixtureIDs), "rows", len(derived))
	}

	// 4. Aggregate and report
	start = time.Now()
	generator := reporting.NewGenerator(featureStore, playerStatStore)
	if err := generator.WriteFiles(ctx, outputDir); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	m.ReportsGenerated.Inc()
	m.PipelineDuration.WithLabelValues("report").Observe(time.Since(start).Seconds())

	logger.Info("pipeline complete", "run_id", runID, "output_dir", outputDir)
	return nil
}

// loadShots reads a JSON array of shot frames recorded from the feed and
// stores them as shot events. Non-shot frames are skipped.
func loadShots(ctx context.Context, store *memory.ShotStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var msgs []feed.ShotMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	createdAt := time.Now().UnixMilli()
	count := 0
	for _, msg := range msgs {
		if msg.Type != "" && !strings.EqualFold(msg.Type, feed.MessageTypeShot) {
			continue
		}
		if err := store.Insert(ctx, msg.ToShotEvent(createdAt)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
