package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lmctl_api_requests_total",
			Help: "Total number of REST requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lmctl_api_request_duration_seconds",
			Help:    "REST request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Pagination metrics
	PaginationPagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lmctl_pagination_pages_total",
			Help: "Total number of pages fetched across all list requests",
		},
	)

	PaginationTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lmctl_pagination_truncated_total",
			Help: "Total number of list requests stopped at the iteration cap",
		},
	)

	// Resolver metrics
	ResolverLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lmctl_resolver_lookups_total",
			Help: "Total number of resource lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Reconcile metrics
	ReconcileActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lmctl_reconcile_actions_total",
			Help: "Total number of reconcile actions by kind, action, and outcome",
		},
		[]string{"kind", "action", "outcome"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(PaginationPagesTotal)
	prometheus.MustRegister(PaginationTruncatedTotal)
	prometheus.MustRegister(ResolverLookupsTotal)
	prometheus.MustRegister(ReconcileActionsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer provides a convenient way to time operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration is a helper to time an operation and record it.
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Duration().Seconds())
}

// ObserveDurationVec records the elapsed time in a labeled histogram.
func (t *Timer) ObserveDurationVec(vec *prometheus.HistogramVec, labels ...string) {
	vec.WithLabelValues(labels...).Observe(t.Duration().Seconds())
}
