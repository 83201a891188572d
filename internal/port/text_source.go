package port

import "context"

// Document carries the raw bytes of one uploaded invoice document along
// with the content type reported at upload time.
type Document struct {
	Bytes       []byte
	ContentType string
}

// TextSource turns a document into raw invoice text. Implementations
// include the embedded PDF text layer and OCR engines; a source that
// cannot handle the document returns an error and the orchestrator moves
// on to the next one.
type TextSource interface {
	Name() string
	Text(ctx context.Context, doc Document) (string, error)
}
