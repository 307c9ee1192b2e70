package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/services"
	"github.com/thoufiq2326/NexusAI/services/corpus"
	"github.com/thoufiq2326/NexusAI/utils"
)

// multipartOverhead is the allowance for multipart framing on top of the file limit
const multipartOverhead = 1 << 20

// Uploader indexes uploaded documents into the knowledge corpus
type Uploader interface {
	Upload(ctx context.Context, up corpus.Upload) (*corpus.Summary, error)
}

// UploadHandler handles knowledge base uploads
type UploadHandler struct {
	uploads  Uploader
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadHandler creates a new UploadHandler. maxBytes is the file size limit.
func NewUploadHandler(uploads Uploader, maxBytes int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploads:  uploads,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// HandleUpload handles POST /api/upload
// Expects multipart form data with the document in the "file" field
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleServiceError(w, services.ErrFileTooLarge, h.logger)
			return
		}
		h.logger.Debug("upload without file field", zap.Error(err))
		HandleServiceError(w, services.ErrMissingFile, h.logger)
		return
	}
	defer file.Close()

	// one byte past the limit is enough for the size check
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		HandleServiceError(w, services.WrapInternal("failed to read upload", err), h.logger)
		return
	}

	summary, err := h.uploads.Upload(r.Context(), corpus.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, summary); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
