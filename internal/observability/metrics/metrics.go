package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "solarfleet_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	datasetLoadTotal   *prometheus.CounterVec
	datasetLoadLatency *prometheus.HistogramVec
	datasetRows        prometheus.Gauge
	plantsOnline       prometheus.Gauge
	plantsOffline      prometheus.Gauge

	dashboardQueryTotal   *prometheus.CounterVec
	dashboardQueryLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, plantsTable string, logger *log.Logger) {
	registerOnce.Do(func() {
		datasetLoadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dataset_load_total",
				Help: "Total dataset loads by result",
			},
			[]string{"result"},
		)
		datasetLoadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dataset_load_latency_seconds",
				Help:    "Dataset load latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		datasetRows = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "dataset_rows",
				Help: "Rows in the last loaded dataset snapshot",
			},
		)
		plantsOnline = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "plants_online",
				Help: "Online plants in the last loaded snapshot",
			},
		)
		plantsOffline = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "plants_offline",
				Help: "Offline plants in the last loaded snapshot",
			},
		)

		dashboardQueryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dashboard_query_total",
				Help: "Total dashboard queries by result",
			},
			[]string{"result"},
		)
		dashboardQueryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dashboard_query_latency_seconds",
				Help:    "Dashboard query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			datasetLoadTotal,
			datasetLoadLatency,
			datasetRows,
			plantsOnline,
			plantsOffline,
			dashboardQueryTotal,
			dashboardQueryLatency,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, plantsTable, logger)
		}
	})
}

// ObserveDatasetLoad records dataset load latency and result.
func ObserveDatasetLoad(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if datasetLoadTotal != nil {
		datasetLoadTotal.WithLabelValues(result).Inc()
	}
	if datasetLoadLatency != nil {
		datasetLoadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// SetFleetGauges sets the row count and operational split of the cached
// snapshot.
func SetFleetGauges(rows, online, offline int) {
	if datasetRows != nil && rows >= 0 {
		datasetRows.Set(float64(rows))
	}
	if plantsOnline != nil && online >= 0 {
		plantsOnline.Set(float64(online))
	}
	if plantsOffline != nil && offline >= 0 {
		plantsOffline.Set(float64(offline))
	}
}

// ObserveDashboardQuery records dashboard query latency and result.
func ObserveDashboardQuery(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if dashboardQueryTotal != nil {
		dashboardQueryTotal.WithLabelValues(result).Inc()
	}
	if dashboardQueryLatency != nil {
		dashboardQueryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
