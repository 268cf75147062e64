package domain

import "math"

// TierFor classifies an unrounded parameter value against the fixed
// operational thresholds (see the package documentation). Sea level
// classifies on the absolute anomaly.
func TierFor(kind ParameterKind, value float64) RiskTier {
	switch kind {
	case KindSST:
		switch {
		case value > 30:
			return RiskHigh
		case value >= 28:
			return RiskMedium
		}
	case KindSeaLevel:
		a := math.Abs(value)
		switch {
		case a > 0.5:
			return RiskHigh
		case a >= 0.3:
			return RiskMedium
		}
	case KindChlorophyll:
		switch {
		case value > 1.0:
			return RiskHigh
		case value >= 0.5:
			return RiskMedium
		}
	case KindWind:
		switch {
		case value > 15:
			return RiskHigh
		case value >= 10:
			return RiskMedium
		}
	case KindRainfall:
		switch {
		case value > 50:
			return RiskHigh
		case value >= 25:
			return RiskMedium
		}
	}
	return RiskLow
}

// BloomRiskFor maps a chlorophyll concentration to its bloom-risk label.
// Shares the chlorophyll tier thresholds.
func BloomRiskFor(concentration float64) string {
	return string(TierFor(KindChlorophyll, concentration))
}

// RoundValue rounds a value to the kind's presentation precision:
// SST 2 dp, sea level 3 dp, chlorophyll 3 dp, wind 1 dp, rainfall 2 dp.
func RoundValue(kind ParameterKind, v float64) float64 {
	var places int
	switch kind {
	case KindSST, KindRainfall:
		places = 2
	case KindSeaLevel, KindChlorophyll:
		places = 3
	case KindWind:
		places = 1
	}
	return roundTo(v, places)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Scalar extracts the reducer's numeric for an observation: Speed for wind,
// Accumulation for rainfall, Value for everything else. Missing kind-specific
// fields fall back to zero.
func Scalar(kind ParameterKind, o Observation) float64 {
	switch kind {
	case KindWind:
		if o.Speed != nil {
			return *o.Speed
		}
		return 0
	case KindRainfall:
		if o.Accumulation != nil {
			return *o.Accumulation
		}
		return 0
	}
	return o.Value
}

// Reduce collapses a parameter's observation sequence into a single
// ParameterSummary. Instantaneous kinds average their scalar; rainfall sums
// accumulation. The risk tier is computed from the unrounded figure before
// presentation rounding is applied. An empty sequence returns ErrNoData.
func Reduce(kind ParameterKind, obs []Observation) (ParameterSummary, error) {
	if len(obs) == 0 {
		return ParameterSummary{}, ErrNoData
	}

	var sum float64
	for _, o := range obs {
		sum += Scalar(kind, o)
	}
	value := sum
	if !kind.Cumulative() {
		value = sum / float64(len(obs))
	}

	s := ParameterSummary{
		Kind:  kind,
		Value: RoundValue(kind, value),
		Unit:  kind.Unit(),
		Risk:  TierFor(kind, value),
		Trend: trendOf(kind, obs),
	}
	attachExtras(&s, kind, obs, value)
	return s, nil
}

// trendOf compares the last observation's scalar to the first. Sequences of
// fewer than 2 observations are stable by definition.
func trendOf(kind ParameterKind, obs []Observation) TrendDirection {
	if len(obs) < 2 {
		return TrendStable
	}
	first := Scalar(kind, obs[0])
	last := Scalar(kind, obs[len(obs)-1])
	switch {
	case last > first:
		return TrendIncreasing
	case last < first:
		return TrendDecreasing
	}
	return TrendStable
}

// attachExtras fills the kind-specific summary fields from the series.
func attachExtras(s *ParameterSummary, kind ParameterKind, obs []Observation, value float64) {
	switch kind {
	case KindSST:
		if m, ok := meanPtr(obs, func(o Observation) *float64 { return o.Anomaly }); ok {
			m = roundTo(m, 2)
			s.Anomaly = &m
		}
	case KindSeaLevel:
		if m, ok := meanPtr(obs, func(o Observation) *float64 { return o.TrendRate }); ok {
			m = roundTo(m, 2)
			s.TrendRate = &m
		}
	case KindChlorophyll:
		br := BloomRiskFor(value)
		s.BloomRisk = &br
	case KindWind:
		if m, ok := meanPtr(obs, func(o Observation) *float64 { return o.Direction }); ok {
			m = roundTo(m, 0)
			s.Direction = &m
		}
	}
}

// meanPtr averages an optional field across the series, skipping nils.
func meanPtr(obs []Observation, get func(Observation) *float64) (float64, bool) {
	var sum float64
	var n int
	for _, o := range obs {
		if v := get(o); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
