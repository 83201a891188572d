package acquire

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"invoscan/internal/port"
)

// ErrNoUsableText signals that every strategy failed or produced text
// below the minimum viable length. Callers map this to an empty
// extraction result rather than an error response.
var ErrNoUsableText = errors.New("no acquisition strategy produced usable text")

// Config holds orchestrator tunables.
type Config struct {
	// MinTextLen is the minimum number of non-whitespace-trimmed
	// characters a strategy must return to count as usable.
	MinTextLen int
	// AttemptTimeout bounds each strategy attempt independently.
	AttemptTimeout time.Duration
}

// Orchestrator runs an ordered list of text sources until one yields
// usable text. Strategies run sequentially so a cheap strategy (the PDF
// text layer) can short-circuit the expensive ones (OCR). A strategy
// error or timeout falls through to the next strategy.
type Orchestrator struct {
	sources []port.TextSource
	cfg     Config
}

// NewOrchestrator builds an orchestrator over sources, tried in the
// given order.
func NewOrchestrator(sources []port.TextSource, cfg Config) *Orchestrator {
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = 10
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 30 * time.Second
	}
	return &Orchestrator{sources: sources, cfg: cfg}
}

// Acquire returns the first usable text any source produces, along with
// the name of the source that produced it.
func (o *Orchestrator) Acquire(ctx context.Context, doc port.Document) (string, string, error) {
	for _, src := range o.sources {
		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.AttemptTimeout)
		text, err := src.Text(attemptCtx, doc)
		cancel()
		if err != nil {
			log.Printf("acquire: source %s failed: %v", src.Name(), err)
			continue
		}
		if len(strings.TrimSpace(text)) < o.cfg.MinTextLen {
			log.Printf("acquire: source %s returned %d chars, below minimum %d",
				src.Name(), len(strings.TrimSpace(text)), o.cfg.MinTextLen)
			continue
		}
		return text, src.Name(), nil
	}
	return "", "", ErrNoUsableText
}
