//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/coastwatch/ocean-data-service/internal/adapter/kafka"
	"github.com/coastwatch/ocean-data-service/internal/config"
	"github.com/coastwatch/ocean-data-service/internal/domain"
)

const testSinkTopic = "test-ocean-threat-assessments"

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	testcontainers.CleanupContainer(t, container)

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates the topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPublisherRoundTrip verifies the publisher writes an assessment that a
// consumer can read back with key, headers, and payload intact.
func TestPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}
	publisher := kafka.NewPublisher(cfg, discardLogger())
	defer publisher.Close()

	generated := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	assessment := &domain.ThreatAssessment{
		ID:        fmt.Sprintf("it-%d", time.Now().UnixNano()),
		Timestamp: generated,
		BBox:      domain.BoundingBox{MinLat: 5, MinLon: 80, MaxLat: 25, MaxLon: 100},
		Center:    domain.Geo{Lat: 15, Lon: 90},
		Score:     70,
		Level:     domain.ThreatHigh,
		Factors: []string{
			"Elevated sea surface temperature",
			"Abnormal sea level variations",
			"High wind speeds",
		},
		Recommendations: []string{
			"Monitor for marine heat wave conditions and coral bleaching risk",
			"Prepare for potential coastal flooding",
			"Prepare for storm conditions",
		},
	}

	require.NoError(t, publisher.Publish(ctx, assessment))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	defer consumer.Close()

	readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
	defer cancelRead()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	assert.Equal(t, assessment.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "high", headers["level"])
	assert.Equal(t, "2025-06-02T12:00:00Z", headers["generated_at"])

	var got domain.ThreatAssessment
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, assessment.ID, got.ID)
	assert.Equal(t, 70, got.Score)
	assert.Equal(t, domain.ThreatHigh, got.Level)
	assert.Equal(t, assessment.Factors, got.Factors)
}
