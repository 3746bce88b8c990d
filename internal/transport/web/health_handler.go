package web

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`            // "ok" or "error"
	Timestamp time.Time         `json:"timestamp"`         // Current server time
	Checks    map[string]string `json:"checks,omitempty"`  // Individual component health
	Uptime    string            `json:"uptime,omitempty"`  // Server uptime (optional)
	Version   string            `json:"version,omitempty"` // Application version (optional)
}

var startTime = time.Now()

// HealthCheck handles the /health endpoint.
// This is a lightweight endpoint that always returns 200 OK if the service is running.
// It's primarily used by load balancers and monitoring systems to check if the service is alive.
//
// This endpoint does NOT check dependencies (database, external services).
// Use /readiness for dependency checks.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    formatUptime(time.Since(startTime)),
	}

	jsonResponse(w, http.StatusOK, response)
}

// ReadinessCheck handles the /readiness endpoint.
// This endpoint checks if the service is ready to accept traffic by verifying
// that all critical dependencies are available.
//
// Returns:
// - 200 OK if all dependencies are healthy
// - 503 Service Unavailable if any dependency is unhealthy
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	allHealthy := true

	dbStatus := h.checkDatabase()
	checks["database"] = dbStatus
	if dbStatus != "ok" {
		allHealthy = false
	}

	status := "ok"
	httpStatus := http.StatusOK

	if !allHealthy {
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	jsonResponse(w, httpStatus, response)
}

// checkDatabase verifies database connectivity by executing a simple ping.
// Returns "ok" if database is reachable, "error" otherwise.
func (h *Handler) checkDatabase() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.container.SQLDB.PingContext(ctx); err != nil {
		return "error"
	}
	return "ok"
}

// formatUptime converts a duration into a human-readable uptime string.
// Examples: "2d 5h 23m", "2h 15m 30s", "45s"
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
