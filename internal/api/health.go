package api

import (
	"net/http"

	"recircle/internal/db"
)

type HealthHandler struct {
	serviceName string
	database    *db.DB
}

func NewHealthHandler(serviceName string, database *db.DB) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, database: database}
}

// Check pings the database and reports overall service health. Keep-alive
// pings and uptime monitors hit this endpoint, so it must stay cheap.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	status := http.StatusOK

	if err := h.database.Ping(); err != nil {
		dbStatus = "error"
		status = http.StatusServiceUnavailable
	}

	result := "ok"
	if status != http.StatusOK {
		result = "degraded"
	}

	writeJSON(w, status, map[string]any{
		"service": h.serviceName,
		"status":  result,
		"checks": map[string]string{
			"database": dbStatus,
		},
	})
}
