package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/middleware"
	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/swarm"
	"github.com/thoufiq2326/NexusAI/utils"
)

// Pipeline is the engine surface behind the dashboard endpoints
type Pipeline interface {
	Leads() []*models.Lead
	Logs() []models.LogEntry
	Audit() []models.AuditEntry
	Status() swarm.Status
	Analytics() swarm.Analytics
	Advance(ctx context.Context) (*swarm.CycleResult, error)
	Reset(ctx context.Context) error
}

// ResetResponse is returned by POST /api/reset
type ResetResponse struct {
	Status string `json:"status"`
}

// PipelineHandler handles the swarm pipeline endpoints
type PipelineHandler struct {
	engine Pipeline
	logger *zap.Logger
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(engine Pipeline, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		engine: engine,
		logger: logger,
	}
}

// HandleStatus handles GET /api/status
func (h *PipelineHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.engine.Status())
}

// HandleLeads handles GET /api/leads
func (h *PipelineHandler) HandleLeads(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.engine.Leads())
}

// HandleLogs handles GET /api/logs
func (h *PipelineHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.engine.Logs())
}

// HandleAudit handles GET /api/audit
func (h *PipelineHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.engine.Audit())
}

// HandleAnalytics handles GET /api/analytics
func (h *PipelineHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.engine.Analytics())
}

// HandleRunSwarm handles POST /api/run-swarm
// Advances the pipeline by exactly one step
func (h *PipelineHandler) HandleRunSwarm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.engine.Advance(ctx)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Debug("swarm step served",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("agent", result.Result.Agent),
		zap.String("outcome", string(result.Result.Outcome)),
		zap.Int64("execution_ms", result.ExecutionMS),
	)

	h.write(w, result)
}

// HandleReset handles POST /api/reset
func (h *PipelineHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Reset(r.Context()); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	h.write(w, ResetResponse{Status: "reset"})
}

func (h *PipelineHandler) write(w http.ResponseWriter, body interface{}) {
	if err := utils.WriteOK(w, body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
