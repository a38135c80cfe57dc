// Package ingestion drains the live shot feed into durable storage.
package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"football-xg-lab/internal/feed"
	"football-xg-lab/internal/observability"
	"football-xg-lab/internal/storage"
)

// MessageSource delivers decoded shot frames. *feed.Client satisfies it.
type MessageSource interface {
	Messages() <-chan feed.ShotMessage
}

// Runner consumes shot frames from a feed and writes them to the shot store.
// Duplicate events are expected across reconnects and are not errors.
type Runner struct {
	source         MessageSource
	shotStore      storage.ShotStore
	metrics        *observability.Metrics
	reconnectsFn   func() uint64
	statusInterval time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Source    MessageSource
	ShotStore storage.ShotStore
	Metrics   *observability.Metrics
	// ReconnectsFn reports feed reconnect attempts for the status gauge.
	ReconnectsFn func() uint64
	// StatusInterval controls how often gauges are refreshed. Default: 10s.
	StatusInterval time.Duration
	Logger         *slog.Logger
	// Now supplies created_at timestamps. Default: time.Now.
	Now func() time.Time
}

// NewRunner creates a new ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	statusInterval := opts.StatusInterval
	if statusInterval == 0 {
		statusInterval = 10 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Runner{
		source:         opts.Source,
		shotStore:      opts.ShotStore,
		metrics:        opts.Metrics,
		reconnectsFn:   opts.ReconnectsFn,
		statusInterval: statusInterval,
		logger:         logger,
		now:            now,
	}
}

// Run consumes the feed until the context is cancelled or the source closes.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("starting ingestion runner")

	statusTicker := time.NewTicker(r.statusInterval)
	defer statusTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("ingestion runner stopping")
			return ctx.Err()

		case msg, ok := <-r.source.Messages():
			if !ok {
				r.logger.Info("feed channel closed")
				return errors.New("feed channel closed")
			}
			r.handleShot(ctx, msg)

		case <-statusTicker.C:
			if r.metrics != nil && r.reconnectsFn != nil {
				r.metrics.FeedReconnects.Set(float64(r.reconnectsFn()))
			}
		}
	}
}

// handleShot stores a single shot frame.
func (r *Runner) handleShot(ctx context.Context, msg feed.ShotMessage) {
	event := msg.ToShotEvent(r.now().UnixMilli())

	start := time.Now()
	err := r.shotStore.Insert(ctx, event)
	if r.metrics != nil {
		r.metrics.ShotStoreLatency.Observe(time.Since(start).Seconds())
	}

	switch {
	case err == nil:
		if r.metrics != nil {
			r.metrics.ShotsIngested.Inc()
			r.metrics.LastSuccessfulIngestion.Set(float64(r.now().Unix()))
		}
	case errors.Is(err, storage.ErrDuplicateKey):
		// Replays after reconnect land here
		if r.metrics != nil {
			r.metrics.ShotsDuplicate.Inc()
		}
	default:
		if r.metrics != nil {
			r.metrics.IngestErrors.Inc()
		}
		r.logger.Error("storing shot event",
			"shot_id", event.ShotID,
			"fixture_id", event.FixtureID,
			"error", err)
	}
}
