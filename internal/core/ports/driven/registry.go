package driven

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a document.
// It maintains a priority-ordered list of extractors and dispatches
// based on MIME type.
type ExtractorRegistry interface {
	// Extract converts a raw document using the best matching extractor.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor TextExtractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
