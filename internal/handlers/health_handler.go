package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports whether every backing store answers a ping.
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler checks each named Pinger on every request.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// ServeHTTP reports the status of each dependency
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,checks=map[string]string}
// @Failure 503 {object} object{status=string,checks=map[string]string}
// @Router /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.PingContext(ctx); err != nil {
			log.Printf("[HEALTH] %s unreachable: %v", name, err)
			checks[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}
