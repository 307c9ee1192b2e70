package corpus

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/services"
)

// Content types accepted for uploads. Browsers often send octet-stream for PDFs.
var acceptedContentTypes = map[string]bool{
	"application/pdf":          true,
	"application/octet-stream": true,
}

// Limits bounds what an upload may look like
type Limits struct {
	MaxBytes     int64
	MinBytes     int64
	MinChars     int
	PreviewChars int
}

// DefaultLimits returns the stock upload limits
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:     10 * 1024 * 1024,
		MinBytes:     100,
		MinChars:     50,
		PreviewChars: 200,
	}
}

// Upload is a file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Summary is returned to the client after a successful upload
type Summary struct {
	Status   string  `json:"status"`
	Filename string  `json:"filename"`
	Pages    int     `json:"pages"`
	Chars    int     `json:"chars"`
	SizeMB   float64 `json:"size_mb"`
	Preview  string  `json:"preview"`
}

// Ingestor validates uploads and turns them into documents
type Ingestor struct {
	extractor Extractor
	limits    Limits
	logger    *zap.Logger
}

// NewIngestor creates a new Ingestor
func NewIngestor(extractor Extractor, limits Limits, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		extractor: extractor,
		limits:    limits,
		logger:    logger,
	}
}

// Limits returns the configured limits
func (i *Ingestor) Limits() Limits {
	return i.limits
}

// Ingest runs the validation chain in order: content type, extension, size
// ceiling, size floor, page count, text length.
func (i *Ingestor) Ingest(ctx context.Context, up Upload) (*Document, error) {
	if !acceptedContentTypes[mediaType(up.ContentType)] {
		return nil, services.NewDomainError(services.ErrorTypeUnsupportedMedia, services.ErrUnsupportedMediaType.Message, nil).
			WithDetail("content_type", up.ContentType)
	}
	if !strings.EqualFold(filepath.Ext(up.Filename), ".pdf") {
		return nil, services.ErrInvalidFileName
	}

	size := int64(len(up.Data))
	if i.limits.MaxBytes > 0 && size > i.limits.MaxBytes {
		return nil, services.NewDomainError(services.ErrorTypePayloadTooLarge, services.ErrFileTooLarge.Message, nil).
			WithDetail("size_bytes", size)
	}
	if size < i.limits.MinBytes {
		return nil, services.ErrFileTooSmall
	}

	extraction, err := i.extractor.Extract(ctx, up.Data)
	if err != nil {
		i.logger.Error("pdf extraction failed",
			zap.String("filename", up.Filename),
			zap.Error(err),
		)
		return nil, services.NewDomainError(services.ErrorTypeInternal, "Failed to process PDF: "+err.Error(), err)
	}
	if extraction.Pages == 0 {
		return nil, services.ErrNoPages
	}
	if utf8.RuneCountInString(strings.TrimSpace(extraction.Text)) < i.limits.MinChars {
		return nil, services.ErrInsufficientText
	}

	return &Document{
		Text:      extraction.Text,
		Filename:  up.Filename,
		Pages:     extraction.Pages,
		Chars:     utf8.RuneCountInString(extraction.Text),
		SizeBytes: size,
		LoadedAt:  time.Now(),
	}, nil
}

// Summarize builds the client-facing summary of an indexed document
func Summarize(doc Document, previewChars int) Summary {
	return Summary{
		Status:   "ok",
		Filename: doc.Filename,
		Pages:    doc.Pages,
		Chars:    doc.Chars,
		SizeMB:   math.Round(float64(doc.SizeBytes)/1024/1024*100) / 100,
		Preview:  strings.TrimSpace(Truncate(doc.Text, previewChars)),
	}
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
