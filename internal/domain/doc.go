// Package domain models oceanographic observations and their reduction into
// risk-classified summaries for the coastal monitoring dashboard.
//
// # Parameters
//
// Five parameter kinds are tracked, each with its own unit, sampling
// resolution, and risk thresholds:
//
//	sea surface temperature  °C      instantaneous
//	sea level anomaly        m       instantaneous (signed deviation from baseline)
//	chlorophyll-a            mg/m³   instantaneous
//	wind                     m/s     instantaneous (speed; direction and gust carried separately)
//	rainfall                 mm      cumulative (24h accumulation)
//
// The instantaneous/cumulative split is load-bearing: reducing a rainfall
// series sums accumulation while every other kind averages. See [Reduce].
//
// # Risk tiers
//
// A parameter's current value maps to a low/medium/high tier against fixed
// operational thresholds (low bound inclusive, high bound exclusive):
//
//	SST:         <28°C low      | 28–30°C medium    | >30°C high
//	Sea level:   |a|<0.3m low   | 0.3–0.5m medium   | >0.5m high
//	Chlorophyll: <0.5 low       | 0.5–1.0 medium    | >1.0 high (mg/m³)
//	Wind:        <10 m/s low    | 10–15 m/s medium  | >15 m/s high
//	Rainfall:    <25mm low      | 25–50mm medium    | >50mm high (24h total)
//
// Sea level classifies on the absolute anomaly; the observation value itself
// is signed. Tier computation always uses the unrounded value; rounding via
// [RoundValue] is cosmetic, for presentation only.
//
// # Quality tags
//
// Individual observations carry a good/fair/poor quality tag assigned by the
// source. Batch-level completeness/accuracy baselines travel in
// [QueryMetadata] and act as a trust signal downstream; they are not
// recomputed from the data.
package domain
