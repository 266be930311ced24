package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordTurn(OutcomeOK)
	m.RecordTurn(OutcomeFallback)
	m.RecordTurn(OutcomeOK)
	m.RecordUpstream(10*time.Millisecond, nil)
	m.RecordUpstream(time.Second, errors.New("boom"))
	m.RecordExport("pdf", "all")
	m.RecordSessionDeleted()
	m.RecordFeedback("positive")
	m.RecordFeedback("meh")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues(OutcomeFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportsTotal.WithLabelValues("pdf", "all")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedbackTotal.WithLabelValues("other")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTurn(OutcomeOK)
		m.RecordUpstream(time.Second, nil)
		m.RecordExport("csv", "session")
		m.RecordSessionDeleted()
		m.RecordFeedback("positive")
	})
}
