package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solarfleet-cloud/internal/fleet/application"
	fleet "solarfleet-cloud/internal/fleet/domain"
	"solarfleet-cloud/internal/observability/metrics"
)

// DashboardHandler serves the full evaluated dashboard.
type DashboardHandler struct {
	service *application.DashboardService
}

// NewDashboardHandler constructs a handler.
func NewDashboardHandler(service *application.DashboardService) (*DashboardHandler, error) {
	if service == nil {
		return nil, errors.New("dashboard handler: nil service")
	}
	return &DashboardHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveDashboardQuery(result, time.Since(start))
	}()

	filters, err := parseFilters(r)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dashboard, err := h.service.Build(r.Context(), filters)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dashboard)
}

// SummaryHandler serves the fleet-wide counters.
type SummaryHandler struct {
	service *application.DashboardService
}

// NewSummaryHandler constructs a handler.
func NewSummaryHandler(service *application.DashboardService) (*SummaryHandler, error) {
	if service == nil {
		return nil, errors.New("summary handler: nil service")
	}
	return &SummaryHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/summary.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(overview)
}

// PlantsHandler serves the status-filtered plant table.
type PlantsHandler struct {
	service *application.DashboardService
}

// NewPlantsHandler constructs a handler.
func NewPlantsHandler(service *application.DashboardService) (*PlantsHandler, error) {
	if service == nil {
		return nil, errors.New("plants handler: nil service")
	}
	return &PlantsHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/plants.
func (h *PlantsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	warranty, operational, err := parseStatusFilters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plants, err := h.service.Plants(r.Context(), warranty, operational)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := struct {
		Plants []application.PlantView `json:"plants"`
		Count  int                     `json:"count"`
	}{Plants: plants, Count: len(plants)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// BucketsHandler serves the band chart for one period.
type BucketsHandler struct {
	service *application.DashboardService
}

// NewBucketsHandler constructs a handler.
func NewBucketsHandler(service *application.DashboardService) (*BucketsHandler, error) {
	if service == nil {
		return nil, errors.New("buckets handler: nil service")
	}
	return &BucketsHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/generation/buckets.
func (h *BucketsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	period, err := fleet.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	band, err := fleet.ParseBand(r.URL.Query().Get("band"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	warranty, operational, err := parseStatusFilters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.service.Buckets(r.Context(), period, band, warranty, operational)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func parseFilters(r *http.Request) (application.Filters, error) {
	var filters application.Filters
	warranty, operational, err := parseStatusFilters(r)
	if err != nil {
		return filters, err
	}
	filters.Warranty = warranty
	filters.Operational = operational

	period, err := fleet.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		return filters, err
	}
	filters.Period = period

	band, err := fleet.ParseBand(r.URL.Query().Get("band"))
	if err != nil {
		return filters, err
	}
	filters.Band = band
	return filters, nil
}

func parseStatusFilters(r *http.Request) (*fleet.WarrantyStatus, *fleet.OperationalStatus, error) {
	warranty, err := fleet.ParseWarrantyFilter(r.URL.Query().Get("warranty"))
	if err != nil {
		return nil, nil, err
	}
	operational, err := fleet.ParseOperationalFilter(r.URL.Query().Get("operational"))
	if err != nil {
		return nil, nil, err
	}
	return warranty, operational, nil
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, application.ErrDatasetUnavailable) {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
