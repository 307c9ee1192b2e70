package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/export"
	"github.com/thoufiq2326/NexusAI/utils"
)

// ExportSource provides the records offered for download
type ExportSource interface {
	Leads() []*models.Lead
	Audit() []models.AuditEntry
}

// ExportHandler serves CSV and JSON downloads
type ExportHandler struct {
	source ExportSource
	now    func() time.Time
	logger *zap.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(source ExportSource, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		source: source,
		now:    time.Now,
		logger: logger,
	}
}

// HandleLeadsCSV handles GET /api/export/csv
func (h *ExportHandler) HandleLeadsCSV(w http.ResponseWriter, r *http.Request) {
	file, err := export.Leads(h.source.Leads(), h.now())
	h.serve(w, file, err)
}

// HandleAuditJSON handles GET /api/export/audit
func (h *ExportHandler) HandleAuditJSON(w http.ResponseWriter, r *http.Request) {
	file, err := export.AuditTrail(h.source.Audit(), h.now())
	h.serve(w, file, err)
}

func (h *ExportHandler) serve(w http.ResponseWriter, file *export.File, err error) {
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if err := utils.WriteAttachment(w, file.ContentType, file.Name, file.Body); err != nil {
		h.logger.Error("failed to write export", zap.String("file", file.Name), zap.Error(err))
	}
}
