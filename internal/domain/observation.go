package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownDataset is returned by a provider when an explicitly requested
// dataset id is not present in the registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// ErrNoData signals that a query or reduction had zero observations to work
// with. The aggregator treats any-kind no-data as "whole summary unavailable";
// the trend analyzer scopes it to the single parameter queried.
var ErrNoData = errors.New("no observations")

// Quality tags assigned to individual observations by the source.
const (
	QualityGood = "good"
	QualityFair = "fair"
	QualityPoor = "poor"
)

// Observation is a single space-time sample of one parameter. Observations
// are created only by a provider and are read-only afterward; they live for
// the duration of one query response.
//
// The pointer fields are kind-specific and nil for other kinds.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Geo       Geo       `json:"geo"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Quality   string    `json:"quality"`
	DatasetID string    `json:"dataset_id"`

	// SST and sea level: deviation from the seasonal baseline.
	Anomaly *float64 `json:"anomaly,omitempty"`
	// Sea level: long-term rise rate in mm/year.
	TrendRate *float64 `json:"trend_rate,omitempty"`
	// Chlorophyll: algal bloom likelihood (low/medium/high).
	BloomRisk *string `json:"bloom_risk,omitempty"`
	// Wind: speed in m/s, direction in degrees, gust in m/s.
	// Speed is the reducer's scalar for wind, not Value.
	Speed     *float64 `json:"speed,omitempty"`
	Direction *float64 `json:"direction,omitempty"`
	Gust      *float64 `json:"gust,omitempty"`
	// Rainfall: rate in mm/h, total in mm, event length in hours.
	// Accumulation is the reducer's scalar for rainfall, summed not averaged.
	Intensity    *float64 `json:"intensity,omitempty"`
	Accumulation *float64 `json:"accumulation,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
}

// Query describes one provider fetch: a time range, a bounding box, and an
// optional dataset id. An empty DatasetID selects the registry's primary
// dataset for the parameter kind.
type Query struct {
	Start     time.Time
	End       time.Time
	BBox      BoundingBox
	DatasetID string
}

// DataQuality is the per-batch completeness/accuracy baseline, both in [0,1].
// Fixed per dataset, used downstream as a freshness/trust signal.
type DataQuality struct {
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
}

// QueryMetadata accompanies a batch of observations.
type QueryMetadata struct {
	Count          int           `json:"count"`
	Start          time.Time     `json:"start"`
	End            time.Time     `json:"end"`
	BBox           BoundingBox   `json:"bbox"`
	SpatialStepDeg float64       `json:"spatial_step_deg"`
	TemporalStep   time.Duration `json:"-"`
	Quality        DataQuality   `json:"quality"`
}

// ObservationSet is one provider response: the samples plus their metadata.
type ObservationSet struct {
	Observations []Observation `json:"observations"`
	Metadata     QueryMetadata `json:"metadata"`
}

// ObservationSource produces observations for a parameter kind over a query
// window. The engine does not care whether the implementation is synthetic or
// a remote fetch.
type ObservationSource interface {
	Fetch(ctx context.Context, kind ParameterKind, q Query) (ObservationSet, error)
}

// DatasetDescriptor is an immutable catalog entry for one upstream dataset.
type DatasetDescriptor struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Kind               ParameterKind `json:"kind"`
	Variables          []string      `json:"variables"`
	TemporalResolution string        `json:"temporal_resolution"`
	SpatialResolution  string        `json:"spatial_resolution"`
	LastUpdated        time.Time     `json:"last_updated"`
}
