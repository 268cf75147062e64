package domain

import "time"

// RiskTier classifies a single parameter's current value.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// TrendDirection describes short-window movement of a parameter.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// ThreatLevel classifies the aggregate threat score.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

// ParameterSummary is the reducer's output for one kind: a representative
// value (mean, or total for rainfall), its risk tier, and the short-window
// trend. Value is rounded for presentation; the tier was computed from the
// unrounded figure. The pointer fields are kind-specific extras.
type ParameterSummary struct {
	Kind  ParameterKind  `json:"kind"`
	Value float64        `json:"value"`
	Unit  string         `json:"unit"`
	Risk  RiskTier       `json:"risk"`
	Trend TrendDirection `json:"trend"`

	Anomaly   *float64 `json:"anomaly,omitempty"`    // SST: mean anomaly, °C
	TrendRate *float64 `json:"trend_rate,omitempty"` // sea level: mean rise rate, mm/year
	BloomRisk *string  `json:"bloom_risk,omitempty"` // chlorophyll
	Direction *float64 `json:"direction,omitempty"`  // wind: mean bearing, degrees
}

// OceanographicSummary is one aggregation cycle's unified output: a
// ParameterSummary per kind, an overall risk tier, and the per-kind data
// quality baselines. Immutable snapshot; the next cycle supersedes it.
type OceanographicSummary struct {
	Timestamp   time.Time                         `json:"timestamp"`
	BBox        BoundingBox                       `json:"bbox"`
	Center      Geo                               `json:"center"`
	Parameters  map[ParameterKind]ParameterSummary `json:"parameters"`
	OverallRisk RiskTier                          `json:"overall_risk"`
	Quality     map[ParameterKind]DataQuality     `json:"quality"`
}

// ThreatAssessment converts a summary's risk tiers into a weighted numeric
// score with explanatory factors and recommendations. Exactly one assessment
// corresponds to one summary.
type ThreatAssessment struct {
	ID              string                            `json:"id"`
	Timestamp       time.Time                         `json:"timestamp"`
	BBox            BoundingBox                       `json:"bbox"`
	Center          Geo                               `json:"center"`
	Score           int                               `json:"score"`
	Level           ThreatLevel                       `json:"level"`
	Factors         []string                          `json:"factors"`
	Recommendations []string                          `json:"recommendations"`
	Parameters      map[ParameterKind]ParameterSummary `json:"parameters"`
}

// TrendResult is the historical analyzer's output for one parameter over one
// window. The raw series and its metadata are retained for charting/export.
type TrendResult struct {
	Kind        ParameterKind  `json:"kind"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	Min         float64        `json:"min"`
	Max         float64        `json:"max"`
	Average     float64        `json:"average"`
	Direction   TrendDirection `json:"direction"`
	Slope       float64        `json:"slope"` // value units per millisecond, rounded to 6 dp
	SampleCount int            `json:"sample_count"`

	Observations []Observation `json:"observations"`
	Metadata     QueryMetadata `json:"metadata"`
}
