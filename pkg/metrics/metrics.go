// Package metrics provides the centralized Prometheus metrics registry for
// the gallery service. All metrics are defined in their respective packages
// (artic, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the gallery service.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - artic_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - artic_cache_misses_total (Counter): Cache misses
//   - artic_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - artic_304_responses_total (Counter): 304 Not Modified responses
//   - artic_conditional_requests_total (Counter): Conditional requests sent with If-None-Match
//   - artic_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/artic):
//   - artic_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - artic_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - artic_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Retry Metrics (pkg/artic):
//   - artic_retries_total{error_class} (Counter): Retry attempts by error class
//   - artic_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - artic_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(artic_cache_hits_total[5m])) /
//   (sum(rate(artic_cache_hits_total[5m])) + sum(rate(artic_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(artic_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(artic_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(artic_304_responses_total[5m]) / rate(artic_requests_total[5m])
