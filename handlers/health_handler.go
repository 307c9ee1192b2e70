package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/services/swarm"
	"github.com/thoufiq2326/NexusAI/utils"
)

// HealthReporter is the engine surface needed by the health endpoints
type HealthReporter interface {
	Health() swarm.Health
	CheckStore(ctx context.Context) error
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	engine HealthReporter
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(engine HealthReporter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		engine: engine,
		logger: logger,
	}
}

// HandleHealth handles GET /health
// Liveness - always returns 200 while the process serves requests
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, h.engine.Health())
}

// HandleReadiness handles GET /health/ready
// Readiness - checks that the snapshot store is reachable
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"snapshot_store": "healthy"}
	status := "ready"
	httpStatus := http.StatusOK

	if err := h.engine.CheckStore(ctx); err != nil {
		h.logger.Warn("snapshot store health check failed", zap.Error(err))
		checks["snapshot_store"] = "unhealthy"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	response := ReadinessResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}
