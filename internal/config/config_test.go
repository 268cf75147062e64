package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.FallbackAfter)
	assert.Equal(t, domain.BoundingBox{MinLat: 5, MinLon: 80, MaxLat: 25, MaxLon: 100}, cfg.DefaultBBox)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ocean-threat-assessments", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("FALLBACK_AFTER", "500ms")
	t.Setenv("DEFAULT_BBOX", "-10.5,100.0,-5.0,110.0")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-assessments")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.FallbackAfter)
	assert.Equal(t, domain.BoundingBox{MinLat: -10.5, MinLon: 100, MaxLat: -5, MaxLon: 110}, cfg.DefaultBBox)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-assessments", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLL_INTERVAL")
}

func TestLoad_NegativeDuration(t *testing.T) {
	t.Setenv("FALLBACK_AFTER", "-3s")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidBBox(t *testing.T) {
	t.Setenv("DEFAULT_BBOX", "25.0,80.0,5.0,100.0") // minLat > maxLat

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_BBOX")
}

func TestParseBBox(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "5.0,80.0,25.0,100.0", false},
		{"valid with spaces", " 5.0, 80.0, 25.0, 100.0 ", false},
		{"too few components", "5.0,80.0,25.0", true},
		{"non-numeric", "a,b,c,d", true},
		{"inverted latitudes", "25.0,80.0,5.0,100.0", true},
		{"out of range longitude", "5.0,80.0,25.0,200.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBBox(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
