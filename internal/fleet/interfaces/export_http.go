package interfaces

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solarfleet-cloud/internal/audit"
	"solarfleet-cloud/internal/auth"
	"solarfleet-cloud/internal/fleet/application"
	fleet "solarfleet-cloud/internal/fleet/domain"
	"solarfleet-cloud/internal/observability/metrics"
)

// ExportHandler serves downloadable renditions of the fleet data.
type ExportHandler struct {
	service     *application.DashboardService
	auditLogger audit.Logger
}

// NewExportHandler constructs a handler.
func NewExportHandler(service *application.DashboardService, auditLogger audit.Logger) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export handler: nil service")
	}
	return &ExportHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles export routes under /api/v1/exports/.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch strings.TrimPrefix(r.URL.Path, "/api/v1/exports/") {
	case "plants.csv":
		h.handlePlantsCSV(w, r)
	case "plants.xlsx":
		h.handlePlantsXLSX(w, r)
	case "report.pdf":
		h.handleReportPDF(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ExportHandler) handlePlantsCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("csv", result, time.Since(start))
	}()

	warranty, operational, err := parseStatusFilters(r)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plants, err := h.service.Plants(r.Context(), warranty, operational)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"name",
		"power_kwp",
		"installed_at",
		"offline_at",
		"warranty_status",
		"operational_status",
		"daily_pct",
		"fortnightly_pct",
		"monthly_pct",
		"annual_pct",
	})
	for _, row := range plants {
		_ = writer.Write([]string{
			row.Name,
			formatOptionalFloat(row.PowerKWp),
			formatOptionalString(row.InstalledAt),
			formatOptionalString(row.OfflineAt),
			row.WarrantyStatus,
			row.OperationalStatus,
			formatOptionalFloat(row.Generation[string(fleet.PeriodDaily)]),
			formatOptionalFloat(row.Generation[string(fleet.PeriodFortnightly)]),
			formatOptionalFloat(row.Generation[string(fleet.PeriodMonthly)]),
			formatOptionalFloat(row.Generation[string(fleet.PeriodAnnual)]),
		})
	}
	writer.Flush()
	h.logAudit(r, "plants.export", "", map[string]any{"format": "csv", "rows": len(plants)})
}

func (h *ExportHandler) handlePlantsXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("xlsx", result, time.Since(start))
	}()

	warranty, operational, err := parseStatusFilters(r)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dashboard, err := h.service.Build(r.Context(), application.Filters{Warranty: warranty, Operational: operational})
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildPlantsXLSX(dashboard)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "plants.export", dashboard.Checksum, map[string]any{"format": "xlsx", "rows": len(dashboard.Plants)})
}

func (h *ExportHandler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("pdf", result, time.Since(start))
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
	data, err := BuildFleetReportPDF(dashboard)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "report.export", dashboard.Checksum, map[string]any{"format": "pdf"})
}

func (h *ExportHandler) logAudit(r *http.Request, action, resourceID string, meta map[string]any) {
	writeAudit(r, h.auditLogger, action, resourceID, meta)
}

func writeAudit(r *http.Request, logger audit.Logger, action, resourceID string, meta map[string]any) {
	if logger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = logger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "dataset",
		ResourceID:   resourceID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
