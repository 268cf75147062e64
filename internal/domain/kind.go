package domain

import "fmt"

// ParameterKind identifies one of the five tracked ocean parameters.
// The set is closed; it drives thresholds, units, and reducer rules.
type ParameterKind string

const (
	KindSST         ParameterKind = "sst"
	KindSeaLevel    ParameterKind = "sea_level"
	KindChlorophyll ParameterKind = "chlorophyll"
	KindWind        ParameterKind = "wind"
	KindRainfall    ParameterKind = "rainfall"
)

// Kinds returns all parameter kinds in canonical evaluation order.
// Threat factors and recommendations preserve this order so output is
// deterministic regardless of magnitude.
func Kinds() []ParameterKind {
	return []ParameterKind{KindSST, KindSeaLevel, KindChlorophyll, KindWind, KindRainfall}
}

// ParseKind converts an API path/query segment into a ParameterKind.
func ParseKind(s string) (ParameterKind, error) {
	switch ParameterKind(s) {
	case KindSST, KindSeaLevel, KindChlorophyll, KindWind, KindRainfall:
		return ParameterKind(s), nil
	}
	return "", fmt.Errorf("unknown parameter kind %q", s)
}

// Unit returns the presentation unit for the kind.
func (k ParameterKind) Unit() string {
	switch k {
	case KindSST:
		return "°C"
	case KindSeaLevel:
		return "m"
	case KindChlorophyll:
		return "mg/m³"
	case KindWind:
		return "m/s"
	case KindRainfall:
		return "mm"
	}
	return ""
}

// Cumulative reports whether the kind accumulates over the query window
// (rainfall) rather than describing an instantaneous state.
func (k ParameterKind) Cumulative() bool {
	return k == KindRainfall
}
