package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_auth_attempts_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	entityOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_entity_operations_total",
		Help: "Count of CRUD operations by entity, operation and result",
	}, []string{"entity", "operation", "result"})

	tokensPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_refresh_tokens_purged_total",
		Help: "Count of expired refresh tokens removed by the cleanup worker",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAuthAttempt increments the login attempt counter with a result label.
func ObserveAuthAttempt(result string) {
	authAttempts.WithLabelValues(result).Inc()
}

// ObserveEntityOperation increments the CRUD counter for the given entity and operation.
func ObserveEntityOperation(entity, operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	entityOperations.WithLabelValues(entity, operation, result).Inc()
}

// ObserveTokensPurged records expired refresh tokens removed by the cleanup worker.
func ObserveTokensPurged(count int) {
	tokensPurged.Add(float64(count))
}
