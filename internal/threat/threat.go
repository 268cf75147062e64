// Package threat converts a unified oceanographic summary into a weighted
// threat score with explanatory factors and recommendations.
package threat

import (
	"github.com/google/uuid"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

// rule fires when its parameter's risk tier is high. Rules are additive and
// independent; any subset can fire on one summary.
type rule struct {
	kind           domain.ParameterKind
	delta          int
	factor         string
	recommendation string
}

// rules are evaluated in canonical parameter order so factor and
// recommendation lists come out deterministic, not magnitude-ranked.
var rules = []rule{
	{
		kind:           domain.KindSST,
		delta:          25,
		factor:         "Elevated sea surface temperature",
		recommendation: "Monitor for marine heat wave conditions and coral bleaching risk",
	},
	{
		kind:           domain.KindSeaLevel,
		delta:          30,
		factor:         "Abnormal sea level variations",
		recommendation: "Prepare for potential coastal flooding",
	},
	{
		kind:           domain.KindChlorophyll,
		delta:          20,
		factor:         "High chlorophyll concentration",
		recommendation: "Monitor for harmful algal bloom development",
	},
	{
		kind:           domain.KindWind,
		delta:          15,
		factor:         "High wind speeds",
		recommendation: "Prepare for storm conditions",
	},
	{
		kind:           domain.KindRainfall,
		delta:          20,
		factor:         "Heavy rainfall",
		recommendation: "Monitor runoff and coastal water quality",
	},
}

// Assess scores a summary. Returns nil for a nil summary so degraded
// (fallback) responses simply carry no assessment. The score is not clamped:
// all five rules firing totals 110.
func Assess(s *domain.OceanographicSummary) *domain.ThreatAssessment {
	if s == nil {
		return nil
	}

	score := 0
	factors := []string{}
	recommendations := []string{}
	for _, r := range rules {
		if s.Parameters[r.kind].Risk != domain.RiskHigh {
			continue
		}
		score += r.delta
		factors = append(factors, r.factor)
		recommendations = append(recommendations, r.recommendation)
	}

	return &domain.ThreatAssessment{
		ID:              uuid.NewString(),
		Timestamp:       s.Timestamp,
		BBox:            s.BBox,
		Center:          s.Center,
		Score:           score,
		Level:           levelFor(score),
		Factors:         factors,
		Recommendations: recommendations,
		Parameters:      s.Parameters,
	}
}

// levelFor maps a total score to its discrete level, highest threshold first.
func levelFor(score int) domain.ThreatLevel {
	switch {
	case score >= 80:
		return domain.ThreatCritical
	case score >= 60:
		return domain.ThreatHigh
	case score >= 30:
		return domain.ThreatMedium
	}
	return domain.ThreatLow
}
