package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

type componentCheck struct {
	Healthy    bool      `json:"healthy"`
	Error      string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	DurationMs int64     `json:"duration_ms"`
}

type healthReport struct {
	Status     string                    `json:"status"`
	CheckedAt  time.Time                 `json:"checked_at"`
	Components map[string]componentCheck `json:"components"`
}

// HealthHandler answers liveness and readiness probes. Readiness is the
// database ping; everything else this service needs is in-process.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	db := h.checkDatabase(ctx)

	report := healthReport{
		Status:     "healthy",
		CheckedAt:  time.Now(),
		Components: map[string]componentCheck{"postgres": db},
	}

	statusCode := http.StatusOK
	if !db.Healthy {
		report.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(report)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) componentCheck {
	start := time.Now()
	err := h.db.PingContext(ctx)

	check := componentCheck{
		Healthy:    err == nil,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Error = err.Error()
	}
	return check
}
