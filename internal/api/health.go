// Package api serves the loader's operational HTTP surface: Prometheus
// metrics and liveness/readiness probes for the graph store connection.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// readinessTimeout bounds the store round-trip of a readiness probe.
const readinessTimeout = 3 * time.Second

// HealthChecker is satisfied by *channel.Channel.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store     HealthChecker
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. store may be nil when the
// process runs without a graph store connection.
func NewHealthHandler(store HealthChecker, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness handles GET /healthz. It never touches the store.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// Readiness handles GET /readyz by running a trivial statement on a pooled
// session.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"graph_store": "ok"}
	status := "ready"
	code := http.StatusOK

	switch {
	case h.store == nil:
		checks["graph_store"] = "not_configured"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	default:
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := h.store.HealthCheck(ctx); err != nil {
			h.log.WithError(err).Error("readiness: graph store health check failed")
			checks["graph_store"] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, readinessResponse{Status: status, Checks: checks})
}
