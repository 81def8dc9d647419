package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/citizenloop/internal/config"
	"github.com/spec-kit/citizenloop/internal/domain"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/public/health", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/public/health", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/auth/login", "POST", "UNAUTHORIZED")
	m.RecordSubmission(domain.CategoryWater)
	m.RecordTransition(domain.ComplaintStatusResolved)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/public/health", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/api/auth/login", "POST", "UNAUTHORIZED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.complaintsSubmitted.WithLabelValues("WATER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("RESOLVED")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordSubmission(domain.CategoryRoad)
		m.RecordTransition(domain.ComplaintStatusPending)
	})
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "loud"})
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
