package corpus

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extraction is the raw result of reading a document
type Extraction struct {
	Text  string
	Pages int
}

// Extractor turns an uploaded document into plain text
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Extraction, error)
}

// PDFExtractor reads text layers from PDF files
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a new PDFExtractor
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract concatenates the plain text of every page. Pages that fail to
// decode contribute no text. A zero page count is returned as-is.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (result *Extraction, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := reader.NumPage()
	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			e.logger.Debug("skipping unreadable page", zap.Int("page", i), zap.Error(err))
			continue
		}
		sb.WriteString(text)
	}

	return &Extraction{Text: sb.String(), Pages: pages}, nil
}
