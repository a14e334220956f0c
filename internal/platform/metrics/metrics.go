package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	DatasetRecords prometheus.Gauge
	QueriesTotal   prometheus.Counter
	QueryDuration  prometheus.Histogram
	ChartRenders   *prometheus.CounterVec
	RenderFailures *prometheus.CounterVec
	ExportsTotal   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DatasetRecords: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rankboard_dataset_records",
			Help: "Number of university records loaded into the in-memory dataset",
		}),
		QueriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankboard_queries_total",
			Help: "Total number of filter queries executed",
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankboard_query_duration_seconds",
			Help:    "Latency of filter and aggregation queries",
			Buckets: prometheus.DefBuckets,
		}),
		ChartRenders: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankboard_chart_renders_total",
			Help: "Chart renders by chart kind",
		}, []string{"chart"}),
		RenderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankboard_chart_render_failures_total",
			Help: "Chart render failures by chart kind",
		}, []string{"chart"}),
		ExportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankboard_exports_total",
			Help: "Total number of spreadsheet exports served",
		}),
	}
}

// ObserveQuery records one executed query and its duration in seconds.
func (m *Metrics) ObserveQuery(seconds float64) {
	m.QueriesTotal.Inc()
	m.QueryDuration.Observe(seconds)
}
