// Package main fetches raw statistics from the REST API into the disk cache.
// Every response lands in one JSON file; files already on disk are never
// refetched, so interrupted runs resume where they stopped.
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
	"strconv"
	"strings"
	"syscall"
	"time"

	"football-xg-lab/internal/config"
	"football-xg-lab/internal/flatten"
	"football-xg-lab/internal/logging"
	"football-xg-lab/internal/observability"
	"football-xg-lab/internal/rawcache"
	"football-xg-lab/internal/statsapi"
)

func main() {
	apiKey := flag.String("api-key", "", "Statistics API key (defaults to XGLAB_API_KEY)")
	baseURL := flag.String("base-url", "", "Statistics API base URL")
	dataDir := flag.String("data-dir", "", "Directory for cached raw responses")
	countries := flag.String("countries", "", "Comma-separated country codes to keep (empty keeps all)")
	leagues := flag.String("leagues", "", "Comma-separated league ids to fetch (overrides discovery)")
	maxFixtures := flag.Int("max-fixtures", 0, "Stop after this many fixtures per league (0 = no limit)")
	metricsAddr := flag.String("metrics-addr", "", "Address for /metrics during the run (empty disables)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	applyFlag(&cfg.APIKey, *apiKey)
	applyFlag(&cfg.APIBaseURL, *baseURL)
	applyFlag(&cfg.DataDir, *dataDir)
	applyFlag(&cfg.LogLevel, *logLevel)

	logger := logging.New(cfg.LogLevel)

	if cfg.APIKey == "" {
		logger.Error("no API key; pass -api-key or set XGLAB_API_KEY")
		os.Exit(1)
	}

	// Counters are scrapeable while the fetch runs
	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, stopping fetch", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, logger, cfg, *countries, *leagues, *maxFixtures); err != nil && err != context.Canceled {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}
	logger.Info("fetch complete")
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, countries, leagueIDs string, maxFixtures int) error {
	cache, err := rawcache.New(cfg.DataDir)
	if err != nil {
		return err
	}

	f := &fetcher{
		cache:   cache,
		client:  statsapi.NewClient(cfg.APIBaseURL, cfg.APIKey),
		logger:  logger,
		metrics: observability.NewMetrics(""),
	}

	ids, err := f.resolveLeagues(ctx, countries, leagueIDs)
	if err != nil {
		return err
	}
	logger.Info("fetching leagues", "count", len(ids))

	for _, leagueID := range ids {
		if err := f.fetchLeague(ctx, leagueID, maxFixtures); err != nil {
			return err
		}
	}
	return nil
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

// fetcher bundles the cache, the API client and the fetch counters.
type fetcher struct {
	cache   *rawcache.Cache
	client  *statsapi.Client
	logger  *slog.Logger
	metrics *observability.Metrics
}

// cached wraps Cache.GetOrFetch with hit/miss and request accounting.
func (f *fetcher) cached(ctx context.Context, name, root, endpoint string, fetch rawcache.FetchFunc) (json.RawMessage, error) {
	if f.cache.Has(name) {
		f.metrics.CacheHits.Inc()
	} else {
		f.metrics.CacheMisses.Inc()
	}

	return f.cache.GetOrFetch(ctx, name, root, func(ctx context.Context) (json.RawMessage, error) {
		start := time.Now()
		payload, err := fetch(ctx)
		f.metrics.FetchLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

		status := "ok"
		if err != nil {
			status = "error"
		}
		f.metrics.FetchRequests.WithLabelValues(endpoint, status).Inc()
		return payload, err
	})
}

// resolveLeagues returns the league ids to fetch, either from the -leagues
// flag or by discovering player-covered leagues from the API.
func (f *fetcher) resolveLeagues(ctx context.Context, countries, leagueIDs string) ([]int64, error) {
	if leagueIDs != "" {
		return parseIDList(leagueIDs)
	}

	raw, err := f.cached(ctx, "leagues", "leagues", "leagues", f.client.Leagues)
	if err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	leagues, err := statsapi.DecodeLeagues(raw)
	if err != nil {
		return nil, err
	}
	leagues = statsapi.FilterPlayersCovered(leagues)
	if countries != "" {
		codes := splitList(countries)
		leagues = statsapi.FilterCountries(leagues, codes)
	}

	ids := make([]int64, 0, len(leagues))
	for _, l := range leagues {
		ids = append(ids, l.LeagueID)
	}
	f.logger.Info("discovered leagues with player coverage", "count", len(ids))
	return ids, nil
}

// fetchLeague caches the league's fixtures plus player and team statistics
// for every fixture.
func (f *fetcher) fetchLeague(ctx context.Context, leagueID int64, maxFixtures int) error {
	name := fmt.Sprintf("fixtures_league_%d", leagueID)
	raw, err := f.cached(ctx, name, "fixtures", "fixtures", func(ctx context.Context) (json.RawMessage, error) {
		return f.client.FixturesByLeague(ctx, leagueID)
	})
	if err != nil {
		return fmt.Errorf("fetch fixtures for league %d: %w", leagueID, err)
	}

	fixtureIDs, err := decodeFixtureIDs(raw, f.logger)
	if err != nil {
		return err
	}
	if maxFixtures > 0 && len(fixtureIDs) > maxFixtures {
		fixtureIDs = fixtureIDs[:maxFixtures]
	}
	f.logger.Info("fetching fixture statistics", "league_id", leagueID, "fixtures", len(fixtureIDs))

	for _, fixtureID := range fixtureIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		playersName := fmt.Sprintf("players_fixture_%d", fixtureID)
		if _, err := f.cached(ctx, playersName, "players", "players", func(ctx context.Context) (json.RawMessage, error) {
			return f.client.PlayerStatistics(ctx, fixtureID)
		}); err != nil {
			return fmt.Errorf("fetch player statistics for fixture %d: %w", fixtureID, err)
		}

		statsName := fmt.Sprintf("statistics_fixture_%d", fixtureID)
		if _, err := f.cached(ctx, statsName, "statistics", "statistics", func(ctx context.Context) (json.RawMessage, error) {
			return f.client.FixtureStatistics(ctx, fixtureID)
		}); err != nil {
			return fmt.Errorf("fetch team statistics for fixture %d: %w", fixtureID, err)
		}
	}
	return nil
}

// decodeFixtureIDs flattens the raw fixtures payload just far enough to
// extract ids; malformed entries are logged and skipped.
func decodeFixtureIDs(raw json.RawMessage, logger *slog.Logger) ([]int64, error) {
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode fixtures payload: %w", err)
	}

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		fx, err := flatten.FlattenFixture(entry)
		if err != nil {
			logger.Warn("skipping malformed fixture entry", "error", err)
			continue
		}
		ids = append(ids, fx.FixtureID)
	}
	return ids, nil
}

func applyFlag(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, p := range splitList(s) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid league id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
