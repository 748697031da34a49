package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the relay
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orderdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orderdesk_upstream_request_duration_seconds",
			Help:    "Duration of GraphQL Admin API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderdesk_upstream_errors_total",
			Help: "Failed GraphQL Admin API calls by failure kind",
		},
		[]string{"operation", "kind"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderdesk_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderdesk_deliveries_total",
			Help: "Orders marked delivered, by fulfillment path",
		},
		[]string{"path"},
	)
)

// Register registers all collectors
func Register(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequestsTotal)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(UpstreamRequestDuration)
	reg.MustRegister(UpstreamErrorsTotal)
	reg.MustRegister(LoginsTotal)
	reg.MustRegister(DeliveriesTotal)
}
