// Package httpapi exposes the dashboard's REST surface plus the operational
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coastwatch/ocean-data-service/internal/config"
	"github.com/coastwatch/ocean-data-service/internal/domain"
	"github.com/coastwatch/ocean-data-service/internal/observability"
	"github.com/coastwatch/ocean-data-service/internal/registry"
	"github.com/coastwatch/ocean-data-service/internal/summary"
	"github.com/coastwatch/ocean-data-service/internal/threat"
)

const (
	defaultTrendDays = 30
	maxTrendDays     = 365
)

// Summarizer produces the unified summary for a region.
type Summarizer interface {
	Summarize(ctx context.Context, bbox domain.BoundingBox) (*domain.OceanographicSummary, error)
}

// TrendAnalyzer fits a trend over a trailing multi-day window.
type TrendAnalyzer interface {
	Analyze(ctx context.Context, kind domain.ParameterKind, days int) (*domain.TrendResult, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Deps collects the server's collaborators.
type Deps struct {
	Summarizer    Summarizer
	Trends        TrendAnalyzer
	Datasets      *registry.Registry
	Ready         ReadinessChecker
	Fallback      *summary.FallbackGenerator
	DefaultBBox   domain.BoundingBox
	FallbackAfter time.Duration
	Logger        *slog.Logger
	Metrics       *observability.Metrics
	Clock         clockwork.Clock
}

// Server serves the REST API. Summary and threat requests that outrun the
// fallback deadline get a degraded synthetic response instead of an error.
type Server struct {
	httpServer *http.Server
	deps       Deps
}

// NewServer wires the routes. A nil Clock falls back to the real one.
func NewServer(addr string, deps Deps) *Server {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		deps: deps,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/datasets", s.handleDatasets)
	mux.HandleFunc("GET /api/v1/datasets/{id}", s.handleDataset)
	mux.HandleFunc("GET /api/v1/summary", s.handleSummary)
	mux.HandleFunc("GET /api/v1/threat", s.handleThreat)
	mux.HandleFunc("GET /api/v1/trends/{kind}", s.handleTrend)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.deps.Logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.deps.Ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDatasets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"datasets": s.deps.Datasets.List()})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, ok := s.deps.Datasets.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown dataset: "+id)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// summaryResponse wraps a summary with the degradation flag so dashboard
// clients can badge synthetic data.
type summaryResponse struct {
	Degraded bool                         `json:"degraded"`
	Summary  *domain.OceanographicSummary `json:"summary"`
}

type threatResponse struct {
	Degraded   bool                         `json:"degraded"`
	Summary    *domain.OceanographicSummary `json:"summary"`
	Assessment *domain.ThreatAssessment     `json:"assessment,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	bbox, ok := s.bboxParam(w, r)
	if !ok {
		return
	}

	result, degraded := s.summarizeWithFallback(r.Context(), bbox)
	writeJSON(w, http.StatusOK, summaryResponse{Degraded: degraded, Summary: result})
}

func (s *Server) handleThreat(w http.ResponseWriter, r *http.Request) {
	bbox, ok := s.bboxParam(w, r)
	if !ok {
		return
	}

	result, degraded := s.summarizeWithFallback(r.Context(), bbox)
	resp := threatResponse{Degraded: degraded, Summary: result}
	if !degraded {
		resp.Assessment = threat.Assess(result)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := defaultTrendDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		if days > maxTrendDays {
			days = maxTrendDays
		}
	}

	result, err := s.deps.Trends.Analyze(r.Context(), kind, days)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.deps.Logger.Error("trend analysis failed", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "trend analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// summarizeWithFallback races the aggregator against the fallback deadline.
// Slow or failed summaries degrade to synthetic data rather than erroring the
// dashboard.
func (s *Server) summarizeWithFallback(ctx context.Context, bbox domain.BoundingBox) (*domain.OceanographicSummary, bool) {
	type outcome struct {
		summary *domain.OceanographicSummary
		err     error
	}
	results := make(chan outcome, 1)
	go func() {
		sum, err := s.deps.Summarizer.Summarize(ctx, bbox)
		results <- outcome{sum, err}
	}()

	select {
	case out := <-results:
		if out.err == nil {
			return out.summary, false
		}
		s.deps.Logger.Warn("summary failed, serving fallback", "error", out.err)
	case <-s.deps.Clock.After(s.deps.FallbackAfter):
		s.deps.Logger.Warn("summary deadline exceeded, serving fallback",
			"after", s.deps.FallbackAfter)
	case <-ctx.Done():
		s.deps.Logger.Warn("summary request cancelled, serving fallback", "error", ctx.Err())
	}

	s.deps.Metrics.FallbacksServed.Inc()
	return s.deps.Fallback.Summary(s.deps.Clock.Now().UTC(), bbox), true
}

// bboxParam resolves the bbox query parameter, defaulting to the configured
// region. Writes a 400 and returns false on a malformed box.
func (s *Server) bboxParam(w http.ResponseWriter, r *http.Request) (domain.BoundingBox, bool) {
	raw := r.URL.Query().Get("bbox")
	if raw == "" {
		return s.deps.DefaultBBox, true
	}
	bbox, err := config.ParseBBox(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bbox: "+err.Error())
		return domain.BoundingBox{}, false
	}
	return bbox, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
