package summary

import (
	"math/rand"
	"time"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

// fallbackProfile is a kind's documented baseline: a typical value, the valid
// range jittered values are clamped into, and a nominal quality figure.
type fallbackProfile struct {
	value   float64
	min     float64
	max     float64
	quality float64
}

var fallbackProfiles = map[domain.ParameterKind]fallbackProfile{
	domain.KindSST:         {value: 28.5, min: 24, max: 32, quality: 0.90},
	domain.KindSeaLevel:    {value: 0.15, min: -1.2, max: 1.2, quality: 0.85},
	domain.KindChlorophyll: {value: 0.45, min: 0.01, max: 2.5, quality: 0.80},
	domain.KindWind:        {value: 8.0, min: 0, max: 25, quality: 0.88},
	domain.KindRainfall:    {value: 15.0, min: 0, max: 120, quality: 0.90},
}

// FallbackGenerator produces plausible single-point summaries when the
// aggregator has not completed within its bounded wait. Generation is pure
// (no I/O, never blocks) and idempotent, so racing it against the aggregator
// cannot corrupt anything.
type FallbackGenerator struct {
	rand func() float64
}

// NewFallbackGenerator creates a generator. Pass nil to use the default
// random source; tests inject a seeded one.
func NewFallbackGenerator(r func() float64) *FallbackGenerator {
	if r == nil {
		r = rand.Float64
	}
	return &FallbackGenerator{rand: r}
}

// Generate produces a fallback ParameterSummary for the kind: the baseline
// value with ±10% multiplicative jitter, clamped into the kind's valid range,
// with the risk tier re-derived from the jittered value using the same
// thresholds as the reducer. Trend is stable: a single synthetic point has no
// direction.
func (g *FallbackGenerator) Generate(kind domain.ParameterKind) domain.ParameterSummary {
	p := fallbackProfiles[kind]
	value := clampRange(p.value*(0.9+0.2*g.rand()), p.min, p.max)

	s := domain.ParameterSummary{
		Kind:  kind,
		Value: domain.RoundValue(kind, value),
		Unit:  kind.Unit(),
		Risk:  domain.TierFor(kind, value),
		Trend: domain.TrendStable,
	}
	if kind == domain.KindChlorophyll {
		br := domain.BloomRiskFor(value)
		s.BloomRisk = &br
	}
	return s
}

// Quality produces the kind's baseline quality with ±5% additive jitter,
// clamped to [0,1]. Completeness and accuracy are jittered independently.
func (g *FallbackGenerator) Quality(kind domain.ParameterKind) domain.DataQuality {
	p := fallbackProfiles[kind]
	return domain.DataQuality{
		Completeness: clampRange(p.quality+(g.rand()-0.5)*0.1, 0, 1),
		Accuracy:     clampRange(p.quality+(g.rand()-0.5)*0.1, 0, 1),
	}
}

// Summary assembles a full degraded OceanographicSummary for the box. The
// caller supplies "now" so the generator itself stays free of clock state.
func (g *FallbackGenerator) Summary(now time.Time, bbox domain.BoundingBox) *domain.OceanographicSummary {
	params := make(map[domain.ParameterKind]domain.ParameterSummary, len(domain.Kinds()))
	quality := make(map[domain.ParameterKind]domain.DataQuality, len(domain.Kinds()))
	highCount := 0
	for _, kind := range domain.Kinds() {
		ps := g.Generate(kind)
		params[kind] = ps
		quality[kind] = g.Quality(kind)
		if ps.Risk == domain.RiskHigh {
			highCount++
		}
	}

	return &domain.OceanographicSummary{
		Timestamp:   now,
		BBox:        bbox,
		Center:      bbox.Center(),
		Parameters:  params,
		OverallRisk: overallRisk(highCount),
		Quality:     quality,
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
