// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the quotevault service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for a credential service,
// where the slow path is the work-factored password hash (tens to hundreds
// of milliseconds).
var APIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotevault_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quotevault_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method", "path"},
	)

	// AuthFailuresTotal counts failed authentication attempts by reason
	// (unknown_email, wrong_password, token_invalid, token_expired).
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotevault_auth_failures_total",
			Help: "Authentication failures",
		},
		[]string{"reason"},
	)

	// TokensIssuedTotal counts session tokens issued by successful logins.
	TokensIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quotevault_tokens_issued_total",
			Help: "Session tokens issued",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		TokensIssuedTotal,
	)
}
