// Package monitor runs the background assessment loop: summarize the default
// region on a fixed interval, score it, and hand the assessment to an
// optional publisher.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/ocean-data-service/internal/domain"
	"github.com/coastwatch/ocean-data-service/internal/observability"
	"github.com/coastwatch/ocean-data-service/internal/threat"
)

// Summarizer produces the unified summary for a region.
type Summarizer interface {
	Summarize(ctx context.Context, bbox domain.BoundingBox) (*domain.OceanographicSummary, error)
}

// Publisher delivers a completed assessment downstream.
type Publisher interface {
	Publish(ctx context.Context, a *domain.ThreatAssessment) error
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock injects the time source, for deterministic tests.
func WithClock(c clockwork.Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

// Monitor polls the summarizer for the default region and keeps the most
// recent assessment available for readiness checks and the HTTP surface.
type Monitor struct {
	summarizer Summarizer
	publisher  Publisher
	bbox       domain.BoundingBox
	interval   time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock

	ready  atomic.Bool
	latest atomic.Pointer[domain.ThreatAssessment]
}

// New creates a Monitor. publisher may be nil, in which case assessments are
// retained in memory only.
func New(s Summarizer, p Publisher, bbox domain.BoundingBox, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Monitor {
	m := &Monitor{
		summarizer: s,
		publisher:  p,
		bbox:       bbox,
		interval:   interval,
		logger:     logger,
		metrics:    metrics,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckReadiness returns nil once at least one assessment cycle has
// completed, or an error describing why the service is not yet ready.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("monitor has not completed an assessment cycle yet")
	}
	return nil
}

// Latest returns the most recent assessment, or nil before the first
// successful cycle.
func (m *Monitor) Latest() *domain.ThreatAssessment {
	return m.latest.Load()
}

// Run executes assessment cycles until the context is cancelled. The first
// cycle runs immediately; later ones wait out the poll interval.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "interval", m.interval, "bbox", m.bbox)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	for {
		m.runCycle(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		case <-m.clock.After(m.interval):
		}
	}
}

// runCycle performs one summarize-assess-publish pass. Failures are logged
// and counted; the loop always continues to the next interval.
func (m *Monitor) runCycle(ctx context.Context) {
	s, err := m.summarizer.Summarize(ctx, m.bbox)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Error("assessment cycle failed", "error", err)
		m.metrics.MonitorCycles.WithLabelValues("error").Inc()
		return
	}

	a := threat.Assess(s)
	m.latest.Store(a)
	m.ready.Store(true)
	m.metrics.ThreatScore.Set(float64(a.Score))
	m.metrics.MonitorCycles.WithLabelValues("success").Inc()

	m.logger.Info("assessment completed",
		"id", a.ID, "score", a.Score, "level", a.Level, "factors", len(a.Factors))

	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, a); err != nil {
		m.logger.Error("publish assessment failed", "error", err, "id", a.ID)
		m.metrics.PublishErrors.Inc()
		return
	}
	m.metrics.AssessmentsPublished.Inc()
}
