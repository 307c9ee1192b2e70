package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/services"
	"github.com/thoufiq2326/NexusAI/utils"
)

// HandleServiceError maps domain errors to HTTP responses.
// Client-facing messages come from the domain error itself.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}
	message := services.GetErrorMessage(err)

	var status int
	switch {
	case services.IsNotFoundError(err):
		status = http.StatusNotFound

	case services.IsValidationError(err):
		status = http.StatusBadRequest

	case services.IsUnsupportedMediaError(err):
		status = http.StatusUnsupportedMediaType

	case services.IsPayloadTooLargeError(err):
		status = http.StatusRequestEntityTooLarge

	case services.IsUnprocessableError(err):
		status = http.StatusUnprocessableEntity

	case services.IsExternalError(err):
		// External provider errors are mapped to 502 Bad Gateway
		status = http.StatusBadGateway
		logger.Warn("external service error", zap.Error(err))

	case services.IsInternalError(err):
		status = http.StatusInternalServerError
		logger.Error("internal server error", zap.Error(err))
		details = nil

	default:
		// Unknown error type - log and return a generic message
		logger.Error("unhandled error type", zap.Error(err))
		status = http.StatusInternalServerError
		message = "An unexpected error occurred"
		details = nil
	}

	if err := utils.WriteError(w, status, message, details); err != nil {
		logger.Error("failed to write error response", zap.Error(err), zap.Int("status", status))
	}

	logger.Debug("handled service error",
		zap.String("type", string(services.GetErrorType(err))),
		zap.Int("status", status),
		zap.String("message", message))
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	// Malformed body
	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
