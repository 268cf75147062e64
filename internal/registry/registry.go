// Package registry holds the static catalog of upstream datasets the provider
// can draw from. The catalog is an explicitly constructed immutable value
// injected into consumers, not a package-level singleton, so tests can swap
// in doubles.
package registry

import (
	"time"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

// Registry is the dataset catalog: ten fixed entries, two per parameter kind.
// The first entry listed for a kind is its primary dataset.
type Registry struct {
	ordered []domain.DatasetDescriptor
	byID    map[string]domain.DatasetDescriptor
	primary map[domain.ParameterKind]domain.DatasetDescriptor
}

// New constructs the catalog.
func New() *Registry {
	updated := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	descriptors := []domain.DatasetDescriptor{
		{
			ID:                 "MUR-JPL-L4-GLOB-v4.1",
			Name:               "MUR Global Foundation SST",
			Description:        "Multi-scale Ultra-high Resolution blended sea surface temperature analysis.",
			Kind:               domain.KindSST,
			Variables:          []string{"analysed_sst", "sst_anomaly"},
			TemporalResolution: "daily",
			SpatialResolution:  "1 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "AVHRR_OI-NCEI-L4-GLOB-v2.1",
			Name:               "AVHRR OI Global SST",
			Description:        "Optimally interpolated AVHRR sea surface temperature.",
			Kind:               domain.KindSST,
			Variables:          []string{"sst", "anom"},
			TemporalResolution: "daily",
			SpatialResolution:  "25 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "SSH_GRIDS_L4_2SATS_5DAY",
			Name:               "Gridded Sea Surface Height Anomalies",
			Description:        "Multi-mission gridded sea level anomalies from radar altimetry.",
			Kind:               domain.KindSeaLevel,
			Variables:          []string{"sla", "sla_trend"},
			TemporalResolution: "5 days",
			SpatialResolution:  "17 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "MERGED_TP_J1_OSTM_OST_CYCLES",
			Name:               "Merged Altimeter Sea Level Cycles",
			Description:        "Along-track merged TOPEX/Jason sea surface height record.",
			Kind:               domain.KindSeaLevel,
			Variables:          []string{"ssha"},
			TemporalResolution: "10 days",
			SpatialResolution:  "25 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "MODIS_AQUA_L3_CHL_DAILY_4KM",
			Name:               "MODIS-Aqua Chlorophyll-a",
			Description:        "Daily level-3 mapped chlorophyll-a concentration.",
			Kind:               domain.KindChlorophyll,
			Variables:          []string{"chlor_a"},
			TemporalResolution: "daily",
			SpatialResolution:  "4 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "VIIRS_SNPP_L3_CHL_8DAY",
			Name:               "VIIRS-SNPP Chlorophyll-a 8-day",
			Description:        "8-day composite chlorophyll-a from VIIRS ocean color.",
			Kind:               domain.KindChlorophyll,
			Variables:          []string{"chlor_a"},
			TemporalResolution: "8 days",
			SpatialResolution:  "750 m",
			LastUpdated:        updated,
		},
		{
			ID:                 "CCMP_WINDS_VAM6HR_L4_V3.1",
			Name:               "CCMP Gridded Surface Winds",
			Description:        "Cross-calibrated multi-platform ocean surface wind vectors.",
			Kind:               domain.KindWind,
			Variables:          []string{"wspd", "wdir", "gust"},
			TemporalResolution: "6 hours",
			SpatialResolution:  "25 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "ASCAT_METOP_B_L2_OWV_25KM",
			Name:               "ASCAT MetOp-B Ocean Winds",
			Description:        "Scatterometer ocean surface wind vectors.",
			Kind:               domain.KindWind,
			Variables:          []string{"wind_speed", "wind_dir"},
			TemporalResolution: "12 hours",
			SpatialResolution:  "25 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "GPM_3IMERGHH_07",
			Name:               "GPM IMERG Half-Hourly Precipitation",
			Description:        "Integrated multi-satellite retrievals for GPM, half-hourly rainfall.",
			Kind:               domain.KindRainfall,
			Variables:          []string{"precipitation", "precipitation_rate"},
			TemporalResolution: "30 minutes",
			SpatialResolution:  "10 km",
			LastUpdated:        updated,
		},
		{
			ID:                 "TRMM_3B42_DAILY_7",
			Name:               "TRMM Daily Rainfall",
			Description:        "Daily accumulated rainfall from the TRMM multi-satellite analysis.",
			Kind:               domain.KindRainfall,
			Variables:          []string{"precipitation"},
			TemporalResolution: "daily",
			SpatialResolution:  "25 km",
			LastUpdated:        updated,
		},
	}

	r := &Registry{
		ordered: descriptors,
		byID:    make(map[string]domain.DatasetDescriptor, len(descriptors)),
		primary: make(map[domain.ParameterKind]domain.DatasetDescriptor),
	}
	for _, d := range descriptors {
		r.byID[d.ID] = d
		if _, ok := r.primary[d.Kind]; !ok {
			r.primary[d.Kind] = d
		}
	}
	return r
}

// List returns all descriptors in catalog order. The returned slice is a
// copy; callers cannot mutate the catalog through it.
func (r *Registry) List() []domain.DatasetDescriptor {
	out := make([]domain.DatasetDescriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get looks up a descriptor by id.
func (r *Registry) Get(id string) (domain.DatasetDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Primary returns the default dataset for a kind.
func (r *Registry) Primary(kind domain.ParameterKind) domain.DatasetDescriptor {
	return r.primary[kind]
}
