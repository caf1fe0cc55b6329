package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts handled requests by route template, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "employees_api_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration records handler latency by route template and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "employees_api_http_request_duration_seconds",
		Help:    "Latency in seconds of HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// Database session metrics
var (
	DBSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employees_api_db_sessions_total",
			Help: "Database sessions opened, by mode (pooled/direct) and outcome",
		},
		[]string{"mode", "outcome"},
	)

	DBStatementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employees_api_db_statement_duration_seconds",
			Help:    "Latency in seconds of a session scope, by store operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(DBSessionsTotal, DBStatementDuration)
}
