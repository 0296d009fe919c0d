// Package metrics provides Prometheus metrics for the bazaar tracker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bazaar_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Pipeline Metrics
	PipelineCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bazaar_pipeline_cycles_total",
			Help: "Total number of pipeline cycles run",
		},
	)

	PipelineCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bazaar_pipeline_cycle_duration_seconds",
			Help:    "Time taken to run one full pipeline cycle",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	PipelineStepErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_pipeline_step_errors_total",
			Help: "Pipeline step failures by step",
		},
		[]string{"step"}, // "aggregate", "fetch", "record_hourly", "profit", "opportunities", "flips"
	)

	SnapshotProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bazaar_snapshot_products",
			Help: "Number of products captured in the most recent hourly snapshot",
		},
	)

	OpportunitiesFound = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bazaar_opportunities_found",
			Help: "Profitable products surfaced by the most recent cycle",
		},
	)

	// Hypixel API Metrics
	BazaarFetchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bazaar_fetches_total",
			Help: "Total number of Bazaar API fetches attempted",
		},
	)

	BazaarFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bazaar_fetch_errors_total",
			Help: "Bazaar API fetches that failed",
		},
	)
)
