package metrics

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, plantsTable string, logger *log.Logger) {
	if plantsTable == "" {
		plantsTable = "plants"
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", plantsTable)

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "plants_table_rows",
			Help: "Rows in the plants source table",
		},
		func() float64 {
			return queryCount(db, logger, query)
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
