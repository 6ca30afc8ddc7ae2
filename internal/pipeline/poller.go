// Package pipeline drives the periodic fetch-publish loop of the poller
// service: every interval each configured station is fetched through the
// imgwpib client and the normalized observations are published to the sink.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/imgw-data-etl/imgwpib"
	"github.com/couchcryptid/imgw-data-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Observation is the envelope published to the sink topic. Exactly one of
// Weather or Hydrological is set, matching Kind.
type Observation struct {
	Kind      string                      `json:"kind"` // "weather" or "hydrological"
	StationID string                      `json:"station_id"`
	Weather   *imgwpib.WeatherData        `json:"weather,omitempty"`
	Hydro     *imgwpib.HydrologicalData   `json:"hydrological,omitempty"`
	PolledAt  time.Time                   `json:"polled_at"`
}

// HasAlert reports whether the observation carries an active warning.
func (o Observation) HasAlert() bool {
	switch {
	case o.Weather != nil:
		return o.Weather.Alert.Category != imgwpib.NoAlertCategory
	case o.Hydro != nil:
		return o.Hydro.Alert.Category != imgwpib.NoAlertCategory
	}
	return false
}

// Source fetches one station's normalized observation.
type Source interface {
	// Describe returns the observation kind and station id for logging
	// and metric labels.
	Describe() (kind, stationID string)
	Fetch(ctx context.Context) (Observation, error)
}

// Publisher writes a batch of observations to the destination.
type Publisher interface {
	Publish(ctx context.Context, observations []Observation) error
}

// Poller orchestrates the fetch-publish loop.
type Poller struct {
	sources   []Source
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a Poller. Pass a nil clock to use real time.
func New(sources []Source, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration, clk clockwork.Clock) *Poller {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Poller{
		sources:   sources,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		interval:  interval,
		clock:     clk,
	}
}

// CheckReadiness returns nil once at least one cycle has published data, or
// an error describing why the service is not yet ready.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("poller has not published any observations yet")
	}
	return nil
}

// Run executes poll cycles until the context is cancelled. The first cycle
// starts immediately. A failed publish backs off exponentially (200ms
// doubling up to 5s) before the next attempt; per-station fetch failures
// never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "stations", len(p.sources), "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	backoff := 200 * time.Millisecond
	const maxBackoff = 5 * time.Second

	for {
		wait := p.interval
		if err := p.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("publish failed", "error", err)
			p.metrics.PublishErrors.Inc()
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = 200 * time.Millisecond
		}

		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-p.clock.After(wait):
		}
	}

	p.logger.Info("poller stopping", "reason", ctx.Err())
	return nil
}

// cycle fetches every source once and publishes the successful batch.
func (p *Poller) cycle(ctx context.Context) error {
	start := time.Now()

	observations := make([]Observation, 0, len(p.sources))
	alerts := map[string]int{"weather": 0, "hydrological": 0}

	for _, source := range p.sources {
		kind, stationID := source.Describe()

		fetchStart := time.Now()
		obs, err := source.Fetch(ctx)
		p.metrics.FetchDuration.WithLabelValues(kind).Observe(time.Since(fetchStart).Seconds())

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("fetch failed, skipping station",
				"kind", kind,
				"station_id", stationID,
				"error", err,
			)
			p.metrics.FetchErrors.WithLabelValues(kind).Inc()
			continue
		}
		if obs.HasAlert() {
			alerts[kind]++
		}
		observations = append(observations, obs)
	}

	if len(observations) == 0 {
		p.metrics.PollCycles.Inc()
		return nil
	}

	if err := p.publisher.Publish(ctx, observations); err != nil {
		return err
	}

	p.metrics.ObservationsPublished.Add(float64(len(observations)))
	for kind, count := range alerts {
		p.metrics.ActiveAlerts.WithLabelValues(kind).Set(float64(count))
	}
	p.metrics.PollCycles.Inc()
	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
