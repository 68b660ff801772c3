package driven

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// DocumentSource enumerates the documents of one run.
// The filesystem connector is the built-in implementation.
type DocumentSource interface {
	// List returns the source items in the source's natural order.
	// Content is not loaded. The order of the returned slice decides ordinals.
	List(ctx context.Context) ([]domain.RawDocument, error)

	// Load reads the content of a listed item into raw.Content.
	// A failure affects that item only.
	Load(ctx context.Context, raw *domain.RawDocument) error
}
