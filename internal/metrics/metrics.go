// Package metrics defines Prometheus metrics for the graph loader.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StatementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphloader_statement_duration_seconds",
			Help:    "Graph store statement duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StatementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphloader_statements_total",
			Help: "Total graph store statements by operation and outcome",
		},
		[]string{"op", "status"},
	)

	RowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphloader_rows_total",
			Help: "Total result rows materialized",
		},
		[]string{"op"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphloader_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	SessionsInUse = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphloader_sessions_in_use",
			Help: "Graph store sessions currently leased",
		},
	)
)

// Statement outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Operation labels.
const (
	OpSample = "sample"
	OpGather = "gather"
)

func init() {
	prometheus.MustRegister(
		StatementDuration, StatementsTotal,
		RowsTotal, ErrorsTotal, SessionsInUse,
	)
}
