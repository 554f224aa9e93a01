package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"solarfleet-cloud/internal/audit"
	"solarfleet-cloud/internal/auth"
	"solarfleet-cloud/internal/config"
	"solarfleet-cloud/internal/fleet/application"
	fleet "solarfleet-cloud/internal/fleet/domain"
	"solarfleet-cloud/internal/fleet/infrastructure/filesource"
	fleetpostgres "solarfleet-cloud/internal/fleet/infrastructure/postgres"
	"solarfleet-cloud/internal/fleet/infrastructure/store"
	fleetinterfaces "solarfleet-cloud/internal/fleet/interfaces"
	"solarfleet-cloud/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
	}

	metrics.Init(db, cfg.PlantsTable, logger)

	source, err := buildSource(cfg, db)
	if err != nil {
		logger.Fatalf("dataset source error: %v", err)
	}
	snapshots, err := store.NewSnapshotStore(source, logger)
	if err != nil {
		logger.Fatalf("snapshot store error: %v", err)
	}
	service, err := application.NewDashboardService(snapshots, fleet.SystemClock{}, logger)
	if err != nil {
		logger.Fatalf("dashboard service error: %v", err)
	}

	var auditLogger audit.Logger
	if db != nil {
		auditLogger = audit.NewRepository(db)
	}

	dashboardHandler, err := fleetinterfaces.NewDashboardHandler(service)
	if err != nil {
		logger.Fatalf("dashboard handler error: %v", err)
	}
	summaryHandler, err := fleetinterfaces.NewSummaryHandler(service)
	if err != nil {
		logger.Fatalf("summary handler error: %v", err)
	}
	plantsHandler, err := fleetinterfaces.NewPlantsHandler(service)
	if err != nil {
		logger.Fatalf("plants handler error: %v", err)
	}
	bucketsHandler, err := fleetinterfaces.NewBucketsHandler(service)
	if err != nil {
		logger.Fatalf("buckets handler error: %v", err)
	}
	exportHandler, err := fleetinterfaces.NewExportHandler(service, auditLogger)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}
	reloadHandler, err := fleetinterfaces.NewReloadHandler(service, auditLogger)
	if err != nil {
		logger.Fatalf("reload handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/dashboard", dashboardHandler)
	mux.Handle("/api/v1/summary", summaryHandler)
	mux.Handle("/api/v1/plants", plantsHandler)
	mux.Handle("/api/v1/generation/buckets", bucketsHandler)
	mux.Handle("/api/v1/exports/", exportHandler)
	mux.Handle("/api/v1/dataset/reload", reloadHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s source=%s", cfg.HTTPAddr, source.Name())
	logger.Fatal(server.ListenAndServe())
}

func buildSource(cfg config.Config, db *sql.DB) (fleet.Source, error) {
	switch cfg.DatasetSource {
	case config.SourceCSV:
		return filesource.NewCSVSource(cfg.DatasetPath, cfg.Delimiter(), cfg.Columns)
	case config.SourceXLSX:
		return filesource.NewXLSXSource(cfg.DatasetPath, cfg.DatasetSheet, cfg.Columns)
	case config.SourcePostgres:
		if db == nil {
			return nil, errors.New("postgres source requires DATABASE_URL")
		}
		return fleetpostgres.NewPlantSource(db, fleetpostgres.WithTable(cfg.PlantsTable)), nil
	}
	return nil, fmt.Errorf("unknown dataset source %q", cfg.DatasetSource)
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
