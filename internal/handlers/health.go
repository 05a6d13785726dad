package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vato-reader/internal/catalog"
	"vato-reader/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	loader             catalog.Loader
	bookmarksEnabled   bool
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(loader catalog.Loader, bookmarksEnabled bool) *HealthHandler {
	return &HealthHandler{
		loader:             loader,
		bookmarksEnabled:   bookmarksEnabled,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP reports whether the catalog can be loaded.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if count, err := h.checkCatalog(checkCtx); err != nil {
		logger.WarnContext(ctx, "catalog health check failed", "error", err)
		checks["catalog"] = "error"
		issues = append(issues, "catalog_unavailable")
	} else if count == 0 {
		checks["catalog"] = "empty"
	} else {
		checks["catalog"] = "ok"
	}

	if h.bookmarksEnabled {
		checks["last_read"] = "enabled"
	} else {
		checks["last_read"] = "disabled"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

func (h *HealthHandler) checkCatalog(ctx context.Context) (int, error) {
	records, err := h.loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
