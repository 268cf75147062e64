// Package trend fits a simple linear trend to a single parameter's series
// over a longer window than the aggregator's 24-hour snapshot.
package trend

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

// slopeThreshold classifies the OLS slope, in value units per millisecond.
// TODO: recalibrate for real upstream cadences — at daily sampling ±0.001/ms
// is ±86,400 units/day, so genuine climate-scale trends classify as stable.
const slopeThreshold = 0.001

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock injects the time source, for deterministic tests.
func WithClock(c clockwork.Clock) Option {
	return func(a *Analyzer) { a.clock = c }
}

// Analyzer queries the observation source over a trailing multi-day window
// and reports slope-derived direction plus min/max/average statistics.
type Analyzer struct {
	source domain.ObservationSource
	bbox   domain.BoundingBox
	logger *slog.Logger
	clock  clockwork.Clock
}

// New creates an analyzer fixed to one region of interest.
func New(source domain.ObservationSource, bbox domain.BoundingBox, logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		source: source,
		bbox:   bbox,
		logger: logger,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches the kind's series for the last `days` days and fits an
// ordinary least-squares line of value against epoch milliseconds. The fit
// runs on each observation's value (speed for wind); rainfall trends track
// intensity, not the window accumulation the reducer sums. An empty series
// returns domain.ErrNoData for this one parameter; there is no
// cross-parameter propagation here. The raw series and metadata are retained
// on the result for charting and export.
func (a *Analyzer) Analyze(ctx context.Context, kind domain.ParameterKind, days int) (*domain.TrendResult, error) {
	end := a.clock.Now().UTC()
	start := end.AddDate(0, 0, -days)

	set, err := a.source.Fetch(ctx, kind, domain.Query{Start: start, End: end, BBox: a.bbox})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	if len(set.Observations) == 0 {
		return nil, fmt.Errorf("%s over %dd: %w", kind, days, domain.ErrNoData)
	}

	xs := make([]float64, len(set.Observations))
	ys := make([]float64, len(set.Observations))
	minV, maxV := math.Inf(1), math.Inf(-1)
	var sum float64
	for i, o := range set.Observations {
		xs[i] = float64(o.Timestamp.UnixMilli())
		ys[i] = seriesValue(kind, o)
		sum += ys[i]
		minV = math.Min(minV, ys[i])
		maxV = math.Max(maxV, ys[i])
	}

	slope := olsSlope(xs, ys)

	result := &domain.TrendResult{
		Kind:         kind,
		Start:        start,
		End:          end,
		Min:          minV,
		Max:          maxV,
		Average:      sum / float64(len(ys)),
		Direction:    classify(slope),
		Slope:        math.Round(slope*1e6) / 1e6,
		SampleCount:  len(set.Observations),
		Observations: set.Observations,
		Metadata:     set.Metadata,
	}

	a.logger.Debug("trend analyzed",
		"kind", kind, "days", days, "samples", result.SampleCount,
		"slope", result.Slope, "direction", result.Direction)

	return result, nil
}

// seriesValue reads one observation's trend ordinate: speed for wind, the
// observation value for every other kind.
func seriesValue(kind domain.ParameterKind, o domain.Observation) float64 {
	if kind == domain.KindWind && o.Speed != nil {
		return *o.Speed
	}
	return o.Value
}

// olsSlope computes the closed-form least-squares slope
// (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²). A degenerate series (all x equal)
// yields zero.
func olsSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy, sxy, sxx float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxy += xs[i] * ys[i]
		sxx += xs[i] * xs[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

func classify(slope float64) domain.TrendDirection {
	switch {
	case slope > slopeThreshold:
		return domain.TrendIncreasing
	case slope < -slopeThreshold:
		return domain.TrendDecreasing
	}
	return domain.TrendStable
}
