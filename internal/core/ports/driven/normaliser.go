package driven

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// TextExtractor converts one raw document into plain text.
// Each extractor handles specific MIME types (e.g., PDF, plain text).
type TextExtractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the document's plain text.
	// Errors are per-document; callers skip the document.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}
