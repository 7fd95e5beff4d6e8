// Package metrics exposes Prometheus collectors for the tracking client
// and an optional HTTP listener serving /metrics and /api/health.
package metrics
