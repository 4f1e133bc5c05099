// Package deck renders an analysis record as a slide deck, either a
// standalone HTML document or a PDF printed by headless Chrome.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/bryanwahyu/stratiq/internal/application"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

// DefaultTimeout bounds one PDF rendering.
const DefaultTimeout = 30 * time.Second

// Builder implements analysis.DeckBuilder.
type Builder struct {
	Clock      application.Clock
	ChromePath string // optional, PATH lookup otherwise
	Timeout    time.Duration
}

// Build renders rec in format (deck = PDF, html = HTML).
func (b *Builder) Build(ctx context.Context, rec analysis.Record, format analysis.ExportFormat) (*analysis.File, error) {
	if format != analysis.ExportDeck && format != analysis.ExportHTML {
		return nil, fmt.Errorf("%w: %q", analysis.ErrUnsupportedFormat, format)
	}
	now := b.now()
	d, err := Compose(rec, now)
	if err != nil {
		return nil, err
	}
	html, err := RenderHTML(d)
	if err != nil {
		return nil, err
	}

	file := &analysis.File{
		Data:     html,
		Filename: analysis.ExportFilename(rec, format, now),
		MimeType: format.MimeType(),
	}
	if format == analysis.ExportHTML {
		return file, nil
	}

	browser, err := findBrowser(b.ChromePath)
	if err != nil {
		return nil, err
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pdf, err := renderPDF(ctx, html, browser)
	if err != nil {
		return nil, err
	}
	file.Data = pdf
	return file, nil
}

func (b *Builder) now() time.Time {
	if b.Clock == nil {
		return time.Now().UTC()
	}
	return b.Clock.Now()
}
