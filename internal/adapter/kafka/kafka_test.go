package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/ocean-data-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	a := &domain.ThreatAssessment{
		ID:        "assessment-1",
		Timestamp: now,
		BBox:      domain.BoundingBox{MinLat: 5, MinLon: 80, MaxLat: 25, MaxLon: 100},
		Center:    domain.Geo{Lat: 15, Lon: 90},
		Score:     55,
		Level:     domain.ThreatMedium,
		Factors:   []string{"Elevated sea surface temperature", "Abnormal sea level variations"},
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("assessment-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"score":55`)
	assert.Contains(t, string(msg.Value), `"level":"medium"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "level", msg.Headers[0].Key)
	assert.Equal(t, []byte("medium"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-06-02T12:00:00Z"), msg.Headers[1].Value)
}
