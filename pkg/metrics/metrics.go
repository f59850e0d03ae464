package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the lead service's Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Business metrics
	LeadsListed     *prometheus.CounterVec
	LeadsSeeded     prometheus.Counter
	UsersRegistered prometheus.Counter
	LoginAttempts   *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
}

// New creates the service metrics and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Business metrics
		LeadsListed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_list_queries_total",
				Help: "Total number of lead list queries",
			},
			[]string{"filtered"}, // true, false
		),
		LeadsSeeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "leads_seeded_total",
			Help: "Total number of sample leads generated",
		}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // success, failed
		),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"operation"},
		),
	}
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, e.g. /api/leads/:id

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, status).Observe(time.Since(start).Seconds())
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return err
		}
	}
}

// RecordLeadList counts a list query
func (m *Metrics) RecordLeadList(filtered bool) {
	if m == nil {
		return
	}
	m.LeadsListed.WithLabelValues(strconv.FormatBool(filtered)).Inc()
}

// RecordLeadsSeeded adds n generated leads
func (m *Metrics) RecordLeadsSeeded(n int) {
	if m == nil {
		return
	}
	m.LeadsSeeded.Add(float64(n))
}

// RecordUserRegistered increments users registered counter
func (m *Metrics) RecordUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

// RecordLoginAttempt increments login attempts counter
func (m *Metrics) RecordLoginAttempt(success bool) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome(success, "success", "failed")).Inc()
}

// RecordDBQuery records database query duration
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
