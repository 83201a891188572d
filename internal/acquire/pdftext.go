package acquire

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"invoscan/internal/port"
)

// PDFText extracts the embedded text layer of a born-digital PDF.
// Scanned PDFs carry no text layer and yield little or no text here, in
// which case the orchestrator falls through to OCR.
type PDFText struct{}

// NewPDFText returns the text layer source.
func NewPDFText() *PDFText {
	return &PDFText{}
}

// Name implements port.TextSource.
func (p *PDFText) Name() string { return "pdf-text-layer" }

// Text implements port.TextSource.
func (p *PDFText) Text(_ context.Context, doc port.Document) (string, error) {
	if doc.ContentType != "application/pdf" && !isPDF(doc.Bytes) {
		return "", fmt.Errorf("pdf text layer: document is not a PDF")
	}

	r, err := pdf.NewReader(bytes.NewReader(doc.Bytes), int64(len(doc.Bytes)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
