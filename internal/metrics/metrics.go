// Package metrics provides Prometheus metrics for the chat backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	TurnsTotal       *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	UpstreamFailures prometheus.Counter
	ExportsTotal     *prometheus.CounterVec
	SessionsDeleted  prometheus.Counter
	FeedbackTotal    *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TurnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_turns_total",
				Help: "Total number of conversation turns by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatbot_upstream_request_duration_seconds",
				Help:    "Duration of AI responder calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		UpstreamFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatbot_upstream_failures_total",
				Help: "Total number of AI responder calls answered with the fallback text",
			},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_exports_total",
				Help: "Total number of history exports",
			},
			[]string{"format", "scope"},
		),
		SessionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatbot_sessions_deleted_total",
				Help: "Total number of deleted sessions",
			},
		),
		FeedbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_feedback_total",
				Help: "Total number of feedback submissions by value",
			},
			[]string{"value"},
		),
	}
}

// RecordTurn counts a finished turn.
func (m *Metrics) RecordTurn(outcome string) {
	if m == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstream observes a responder call.
func (m *Metrics) RecordUpstream(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(duration.Seconds())
	if err != nil {
		m.UpstreamFailures.Inc()
	}
}

// RecordExport counts a rendered export.
func (m *Metrics) RecordExport(format, scope string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format, scope).Inc()
}

// RecordSessionDeleted counts a deleted session.
func (m *Metrics) RecordSessionDeleted() {
	if m == nil {
		return
	}
	m.SessionsDeleted.Inc()
}

// RecordFeedback counts a feedback submission. Values other than
// positive and negative are grouped as "other".
func (m *Metrics) RecordFeedback(value string) {
	if m == nil {
		return
	}
	if value != "positive" && value != "negative" {
		value = "other"
	}
	m.FeedbackTotal.WithLabelValues(value).Inc()
}
