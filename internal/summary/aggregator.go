// Package summary orchestrates the five-parameter aggregation cycle and the
// fallback generator the presentation layer races against it.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/ocean-data-service/internal/domain"
	"github.com/coastwatch/ocean-data-service/internal/observability"
)

// Window is the trailing window one aggregation cycle covers.
const Window = 24 * time.Hour

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source, for deterministic tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// Service produces unified oceanographic summaries from an observation source.
type Service struct {
	source  domain.ObservationSource
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates a summary service.
func New(source domain.ObservationSource, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		source:  source,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize fetches all five parameter kinds for the box over the trailing
// 24-hour window, in parallel, and reduces them into one summary. The join is
// all-or-nothing: a fetch error or an empty series for any kind withholds the
// whole summary rather than surfacing partial results.
func (s *Service) Summarize(ctx context.Context, bbox domain.BoundingBox) (*domain.OceanographicSummary, error) {
	started := time.Now()
	end := s.clock.Now().UTC()
	start := end.Add(-Window)

	kinds := domain.Kinds()
	sets := make([]domain.ObservationSet, len(kinds))
	errs := make([]error, len(kinds))

	// Each fetch writes only its own slot, so no locking is needed.
	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind domain.ParameterKind) {
			defer wg.Done()
			sets[i], errs[i] = s.source.Fetch(ctx, kind, domain.Query{Start: start, End: end, BBox: bbox})
		}(i, kind)
	}
	wg.Wait()

	for i, kind := range kinds {
		if err := errs[i]; err != nil {
			s.metrics.SummaryFailures.WithLabelValues("fetch").Inc()
			return nil, fmt.Errorf("fetch %s: %w", kind, err)
		}
		if len(sets[i].Observations) == 0 {
			s.metrics.SummaryFailures.WithLabelValues("no_data").Inc()
			s.logger.Warn("no observations for parameter, withholding summary", "kind", kind, "bbox", bbox)
			return nil, fmt.Errorf("%s: %w", kind, domain.ErrNoData)
		}
	}

	params := make(map[domain.ParameterKind]domain.ParameterSummary, len(kinds))
	quality := make(map[domain.ParameterKind]domain.DataQuality, len(kinds))
	highCount := 0
	for i, kind := range kinds {
		ps, err := domain.Reduce(kind, sets[i].Observations)
		if err != nil {
			return nil, fmt.Errorf("reduce %s: %w", kind, err)
		}
		params[kind] = ps
		quality[kind] = sets[i].Metadata.Quality
		if ps.Risk == domain.RiskHigh {
			highCount++
		}
	}

	out := &domain.OceanographicSummary{
		Timestamp:   end,
		BBox:        bbox,
		Center:      bbox.Center(),
		Parameters:  params,
		OverallRisk: overallRisk(highCount),
		Quality:     quality,
	}

	s.metrics.SummariesTotal.Inc()
	s.metrics.SummarizeDuration.Observe(time.Since(started).Seconds())
	s.logger.Info("summary complete",
		"bbox", bbox, "overall_risk", out.OverallRisk, "high_count", highCount,
		"duration", time.Since(started))

	return out, nil
}

// overallRisk derives the summary-level tier from the number of parameters
// classified high: more than two high is high, one or two is medium.
func overallRisk(highCount int) domain.RiskTier {
	switch {
	case highCount > 2:
		return domain.RiskHigh
	case highCount >= 1:
		return domain.RiskMedium
	}
	return domain.RiskLow
}
