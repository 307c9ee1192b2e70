package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/services/swarm"
	"github.com/thoufiq2326/NexusAI/utils"
)

// KeyConfigurer switches content generation between live and templated mode
type KeyConfigurer interface {
	SetAPIKey(apiKey string) swarm.ConfigResult
}

// ConfigRequest is the body of POST /api/config. An empty key selects
// templated content.
type ConfigRequest struct {
	APIKey       string `json:"api_key" validate:"omitempty,max=256,printascii"`
	GeminiAPIKey string `json:"gemini_api_key" validate:"omitempty,max=256,printascii"`
}

// Key returns the supplied key, preferring api_key over its alias
func (c ConfigRequest) Key() string {
	if c.APIKey != "" {
		return strings.TrimSpace(c.APIKey)
	}
	return strings.TrimSpace(c.GeminiAPIKey)
}

// ConfigHandler handles runtime pipeline configuration
type ConfigHandler struct {
	engine KeyConfigurer
	logger *zap.Logger
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(engine KeyConfigurer, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{
		engine: engine,
		logger: logger,
	}
}

// HandleConfig handles POST /api/config
func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	result := h.engine.SetAPIKey(req.Key())
	h.logger.Info("generation mode updated", zap.String("mode", result.Mode))

	if err := utils.WriteOK(w, result); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
