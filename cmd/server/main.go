package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coastwatch/ocean-data-service/internal/adapter/httpapi"
	kafkaadapter "github.com/coastwatch/ocean-data-service/internal/adapter/kafka"
	"github.com/coastwatch/ocean-data-service/internal/config"
	"github.com/coastwatch/ocean-data-service/internal/monitor"
	"github.com/coastwatch/ocean-data-service/internal/observability"
	"github.com/coastwatch/ocean-data-service/internal/provider"
	"github.com/coastwatch/ocean-data-service/internal/registry"
	"github.com/coastwatch/ocean-data-service/internal/summary"
	"github.com/coastwatch/ocean-data-service/internal/trend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	datasets := registry.New()
	source := provider.NewSynthetic(datasets, logger, metrics)
	summarizer := summary.New(source, logger, metrics)
	fallback := summary.NewFallbackGenerator(nil)
	trends := trend.New(source, cfg.DefaultBBox, logger)

	// Publisher is feature-flagged via KAFKA_ENABLED.
	var publisher monitor.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	mon := monitor.New(summarizer, publisher, cfg.DefaultBBox, cfg.PollInterval, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.Deps{
		Summarizer:    summarizer,
		Trends:        trends,
		Datasets:      datasets,
		Ready:         mon,
		Fallback:      fallback,
		DefaultBBox:   cfg.DefaultBBox,
		FallbackAfter: cfg.FallbackAfter,
		Logger:        logger,
		Metrics:       metrics,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start assessment monitor.
	go func() {
		if err := mon.Run(ctx); err != nil {
			logger.Error("monitor error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
