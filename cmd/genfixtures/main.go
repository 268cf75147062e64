// Command genfixtures produces deterministic JSON fixtures for dashboard and
// API test suites. It runs the actual provider, aggregator, scorer, and trend
// analyzer with a fixed clock and seeded noise so the output matches real
// service behavior.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -summary-out data/fixtures/summary.json \
//	  -threat-out data/fixtures/threat_assessment.json \
//	  -trend-out data/fixtures/sst_trend_30d.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/ocean-data-service/internal/domain"
	"github.com/coastwatch/ocean-data-service/internal/observability"
	"github.com/coastwatch/ocean-data-service/internal/provider"
	"github.com/coastwatch/ocean-data-service/internal/registry"
	"github.com/coastwatch/ocean-data-service/internal/summary"
	"github.com/coastwatch/ocean-data-service/internal/threat"
	"github.com/coastwatch/ocean-data-service/internal/trend"
)

var fixtureNow = time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

// Bay of Bengal, the dashboard's default region.
var fixtureBBox = domain.BoundingBox{MinLat: 5, MinLon: 80, MaxLat: 25, MaxLon: 100}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	summaryOut := flag.String("summary-out", "", "output path for the summary fixture")
	threatOut := flag.String("threat-out", "", "output path for the threat assessment fixture")
	trendOut := flag.String("trend-out", "", "output path for the 30-day SST trend fixture")
	seed := flag.Int64("seed", 42, "noise seed")
	flag.Parse()

	if *summaryOut == "" || *threatOut == "" || *trendOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -summary-out, -threat-out, -trend-out")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(fixtureNow)

	// Per-kind seeded streams: the aggregator fetches all kinds concurrently,
	// so a single shared source would make the output depend on scheduling.
	source := provider.NewSynthetic(registry.New(), logger, metrics, provider.WithSeed(*seed))
	summarizer := summary.New(source, logger, metrics, summary.WithClock(clock))
	trends := trend.New(source, fixtureBBox, logger, trend.WithClock(clock))

	ctx := context.Background()

	s, err := summarizer.Summarize(ctx, fixtureBBox)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if err := writeJSON(*summaryOut, s); err != nil {
		return fmt.Errorf("writing summary fixture: %w", err)
	}
	log.Printf("wrote summary fixture: %s", *summaryOut)

	a := threat.Assess(s)
	if err := writeJSON(*threatOut, a); err != nil {
		return fmt.Errorf("writing threat fixture: %w", err)
	}
	log.Printf("wrote threat fixture: %s", *threatOut)

	tr, err := trends.Analyze(ctx, domain.KindSST, 30)
	if err != nil {
		return fmt.Errorf("trend: %w", err)
	}
	if err := writeJSON(*trendOut, tr); err != nil {
		return fmt.Errorf("writing trend fixture: %w", err)
	}
	log.Printf("wrote trend fixture: %s", *trendOut)

	printStats(s, a, tr)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printStats(s *domain.OceanographicSummary, a *domain.ThreatAssessment, tr *domain.TrendResult) {
	for _, kind := range domain.Kinds() {
		p := s.Parameters[kind]
		log.Printf("%-12s %8.3f %-6s risk=%-6s trend=%s", kind, p.Value, p.Unit, p.Risk, p.Trend)
	}
	log.Printf("overall risk: %s", s.OverallRisk)
	log.Printf("threat: score=%d level=%s factors=%d", a.Score, a.Level, len(a.Factors))
	log.Printf("sst trend: %s slope=%g samples=%d", tr.Direction, tr.Slope, tr.SampleCount)
}
