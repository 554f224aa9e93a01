package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"solarfleet-cloud/internal/audit"
	"solarfleet-cloud/internal/fleet/application"
)

// ReloadHandler forces the dataset to be read again.
type ReloadHandler struct {
	service     *application.DashboardService
	auditLogger audit.Logger
}

// NewReloadHandler constructs a handler.
func NewReloadHandler(service *application.DashboardService, auditLogger audit.Logger) (*ReloadHandler, error) {
	if service == nil {
		return nil, errors.New("reload handler: nil service")
	}
	return &ReloadHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles POST /api/v1/dataset/reload.
func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := h.service.Reload(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
	writeAudit(r, h.auditLogger, "dataset.reload", result.Checksum, map[string]any{
		"source": result.Source,
		"rows":   result.Rows,
	})
}
