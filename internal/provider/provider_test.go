package provider

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/ocean-data-service/internal/domain"
	"github.com/coastwatch/ocean-data-service/internal/observability"
	"github.com/coastwatch/ocean-data-service/internal/registry"
)

var testWindow = struct{ start, end time.Time }{
	start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	end:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
}

func newTestProvider(t *testing.T, opts ...Option) *Synthetic {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSynthetic(registry.New(), logger, observability.NewMetricsForTesting(), opts...)
}

func smallBox() domain.BoundingBox {
	return domain.BoundingBox{MinLat: 10, MinLon: 90, MaxLat: 10.2, MaxLon: 90.2}
}

func TestFetch_UnknownDataset(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Fetch(context.Background(), domain.KindSST, domain.Query{
		Start:     testWindow.start,
		End:       testWindow.end,
		BBox:      smallBox(),
		DatasetID: "NOT-A-DATASET",
	})

	require.ErrorIs(t, err, domain.ErrUnknownDataset)
	assert.Contains(t, err.Error(), "NOT-A-DATASET")
}

func TestFetch_DefaultsToPrimaryDataset(t *testing.T) {
	p := newTestProvider(t)

	set, err := p.Fetch(context.Background(), domain.KindSST, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  smallBox(),
	})

	require.NoError(t, err)
	require.NotEmpty(t, set.Observations)
	assert.Equal(t, "MUR-JPL-L4-GLOB-v4.1", set.Observations[0].DatasetID)
}

func TestFetch_GridShape(t *testing.T) {
	p := newTestProvider(t)

	// 0.2°×0.2° box at SST's 0.1° step: 3 rows × 3 cols; 24h window at a
	// daily cadence samples both inclusive endpoints.
	set, err := p.Fetch(context.Background(), domain.KindSST, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  smallBox(),
	})

	require.NoError(t, err)
	assert.Len(t, set.Observations, 18)
	assert.Equal(t, 18, set.Metadata.Count)
	assert.Equal(t, 0.1, set.Metadata.SpatialStepDeg)
	assert.Equal(t, 24*time.Hour, set.Metadata.TemporalStep)
}

func TestFetch_ZeroSpanBoxYieldsOneSample(t *testing.T) {
	p := newTestProvider(t)

	set, err := p.Fetch(context.Background(), domain.KindWind, domain.Query{
		Start: testWindow.start,
		End:   testWindow.start,
		BBox:  domain.BoundingBox{MinLat: 10, MinLon: 90, MaxLat: 10, MaxLon: 90},
	})

	require.NoError(t, err)
	assert.Len(t, set.Observations, 1)
}

func TestFetch_MalformedBoxYieldsEmptySet(t *testing.T) {
	p := newTestProvider(t)

	set, err := p.Fetch(context.Background(), domain.KindSST, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  domain.BoundingBox{MinLat: 20, MinLon: 90, MaxLat: 10, MaxLon: 95},
	})

	require.NoError(t, err)
	assert.Empty(t, set.Observations)
	assert.Equal(t, 0, set.Metadata.Count)
}

func TestFetch_BaselineQuality(t *testing.T) {
	tests := []struct {
		kind         domain.ParameterKind
		completeness float64
		accuracy     float64
	}{
		{domain.KindSST, 0.95, 0.92},
		{domain.KindSeaLevel, 0.88, 0.89},
		{domain.KindChlorophyll, 0.82, 0.85},
		{domain.KindWind, 0.91, 0.87},
		{domain.KindRainfall, 0.94, 0.90},
	}
	p := newTestProvider(t)
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			set, err := p.Fetch(context.Background(), tt.kind, domain.Query{
				Start: testWindow.start,
				End:   testWindow.end,
				BBox:  smallBox(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.completeness, set.Metadata.Quality.Completeness)
			assert.Equal(t, tt.accuracy, set.Metadata.Quality.Accuracy)
		})
	}
}

func TestFetch_PhysicalClamps(t *testing.T) {
	// A seeded source keeps the test reproducible while still exercising
	// many draws.
	rng := rand.New(rand.NewSource(42))
	p := newTestProvider(t, WithRand(rng.Float64))
	ctx := context.Background()

	t.Run("rainfall non-negative", func(t *testing.T) {
		set, err := p.Fetch(ctx, domain.KindRainfall, domain.Query{
			Start: testWindow.start,
			End:   testWindow.end,
			BBox:  smallBox(),
		})
		require.NoError(t, err)
		require.NotEmpty(t, set.Observations)
		for _, o := range set.Observations {
			require.NotNil(t, o.Accumulation)
			assert.GreaterOrEqual(t, *o.Accumulation, 0.0)
			require.NotNil(t, o.Intensity)
			assert.GreaterOrEqual(t, *o.Intensity, 0.0)
		}
	})

	t.Run("chlorophyll floor", func(t *testing.T) {
		set, err := p.Fetch(ctx, domain.KindChlorophyll, domain.Query{
			Start: testWindow.start,
			End:   testWindow.end,
			BBox:  smallBox(),
		})
		require.NoError(t, err)
		for _, o := range set.Observations {
			assert.GreaterOrEqual(t, o.Value, 0.01)
		}
	})

	t.Run("sst plausible range", func(t *testing.T) {
		set, err := p.Fetch(ctx, domain.KindSST, domain.Query{
			Start: testWindow.start,
			End:   testWindow.end,
			BBox:  smallBox(),
		})
		require.NoError(t, err)
		for _, o := range set.Observations {
			assert.GreaterOrEqual(t, o.Value, 18.0)
			assert.LessOrEqual(t, o.Value, 34.0)
		}
	})

	t.Run("wind speed bounds", func(t *testing.T) {
		set, err := p.Fetch(ctx, domain.KindWind, domain.Query{
			Start: testWindow.start,
			End:   testWindow.end,
			BBox:  smallBox(),
		})
		require.NoError(t, err)
		for _, o := range set.Observations {
			require.NotNil(t, o.Speed)
			assert.GreaterOrEqual(t, *o.Speed, 0.0)
			assert.LessOrEqual(t, *o.Speed, 45.0)
			require.NotNil(t, o.Direction)
			assert.GreaterOrEqual(t, *o.Direction, 0.0)
			assert.LessOrEqual(t, *o.Direction, 360.0)
		}
	})
}

func TestFetch_KindSpecificFields(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	q := domain.Query{Start: testWindow.start, End: testWindow.end, BBox: smallBox()}

	sst, err := p.Fetch(ctx, domain.KindSST, q)
	require.NoError(t, err)
	require.NotNil(t, sst.Observations[0].Anomaly)
	assert.Nil(t, sst.Observations[0].Speed)

	sea, err := p.Fetch(ctx, domain.KindSeaLevel, q)
	require.NoError(t, err)
	require.NotNil(t, sea.Observations[0].TrendRate)

	chl, err := p.Fetch(ctx, domain.KindChlorophyll, q)
	require.NoError(t, err)
	require.NotNil(t, chl.Observations[0].BloomRisk)
}

func TestFetch_TimestampsInsideWindow(t *testing.T) {
	p := newTestProvider(t)

	set, err := p.Fetch(context.Background(), domain.KindRainfall, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  smallBox(),
	})

	require.NoError(t, err)
	for _, o := range set.Observations {
		assert.False(t, o.Timestamp.Before(testWindow.start))
		assert.False(t, o.Timestamp.After(testWindow.end))
	}
}

func TestFetch_WideBoxCoarsensGrid(t *testing.T) {
	p := newTestProvider(t)

	// 20°×20° at chlorophyll's 0.04° step would be 250k cells per time
	// step; the provider coarsens instead of truncating.
	set, err := p.Fetch(context.Background(), domain.KindChlorophyll, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  domain.BoundingBox{MinLat: 5, MinLon: 80, MaxLat: 25, MaxLon: 100},
	})

	require.NoError(t, err)
	require.NotEmpty(t, set.Observations)
	assert.LessOrEqual(t, len(set.Observations), 20000)
	assert.Greater(t, set.Metadata.SpatialStepDeg, 0.04)
}

func TestFetch_SeededKindStreams(t *testing.T) {
	q := domain.Query{Start: testWindow.start, End: testWindow.end, BBox: smallBox()}

	// One fetch per kind, all concurrent, each kind on its own seeded stream.
	concurrent := newTestProvider(t, WithSeed(42))
	results := make([]domain.ObservationSet, len(domain.Kinds()))
	var wg sync.WaitGroup
	for i, kind := range domain.Kinds() {
		wg.Add(1)
		go func(i int, kind domain.ParameterKind) {
			defer wg.Done()
			set, err := concurrent.Fetch(context.Background(), kind, q)
			assert.NoError(t, err)
			results[i] = set
		}(i, kind)
	}
	wg.Wait()

	// A fresh provider fetching sequentially must reproduce every kind
	// exactly: interleaving cannot affect which draws a kind consumes.
	sequential := newTestProvider(t, WithSeed(42))
	for i, kind := range domain.Kinds() {
		set, err := sequential.Fetch(context.Background(), kind, q)
		require.NoError(t, err)
		assert.Equal(t, set.Observations, results[i].Observations, "kind %s", kind)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	p := newTestProvider(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Fetch(ctx, domain.KindSST, domain.Query{
		Start: testWindow.start,
		End:   testWindow.end,
		BBox:  smallBox(),
	})

	require.ErrorIs(t, err, context.Canceled)
}
