package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics holds the terminal client's metrics. A nil *ClientMetrics is
// valid and records nothing.
type ClientMetrics struct {
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	FetchesTotal          *prometheus.CounterVec
	StaleResponsesDropped prometheus.Counter
	SeedsTotal            *prometheus.CounterVec
}

// NewClient creates the client metrics and registers them on reg
func NewClient(reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)
	return &ClientMetrics{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_api_requests_total",
				Help: "Total number of requests sent to the lead service",
			},
			[]string{"endpoint", "outcome"}, // outcome: ok, error
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "leads_api_request_duration_seconds",
				Help:    "Lead service request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadlist_fetches_total",
				Help: "Total number of lead list fetches by outcome",
			},
			[]string{"outcome"}, // applied, failed, stale
		),
		StaleResponsesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "leadlist_stale_responses_dropped_total",
			Help: "Lead list responses dropped because a newer fetch was issued",
		}),
		SeedsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadlist_seeds_total",
				Help: "Total number of reseed requests by outcome",
			},
			[]string{"outcome"}, // ok, error
		),
	}
}

// RecordAPIRequest records one request to the lead service
func (m *ClientMetrics) RecordAPIRequest(endpoint string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(endpoint, outcome(ok, "ok", "error")).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordFetch records how a list fetch was reconciled: applied, failed or stale
func (m *ClientMetrics) RecordFetch(result string) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(result).Inc()
	if result == "stale" {
		m.StaleResponsesDropped.Inc()
	}
}

// RecordSeed records a reseed attempt
func (m *ClientMetrics) RecordSeed(ok bool) {
	if m == nil {
		return
	}
	m.SeedsTotal.WithLabelValues(outcome(ok, "ok", "error")).Inc()
}
