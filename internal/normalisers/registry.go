package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the highest-priority extractor
// registered for their MIME type.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string][]driven.TextExtractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{extractors: make(map[string][]driven.TextExtractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each of its MIME types.
// Among equal priorities the earlier registration wins.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range extractor.SupportedMIMETypes() {
		list := append(r.extractors[mimeType], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.extractors[mimeType] = list
	}
}

// Extract converts raw using the best extractor for its MIME type.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	r.mu.RLock()
	list := r.extractors[raw.MIMEType]
	r.mu.RUnlock()

	if len(list) == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, raw.MIMEType)
	}
	return list[0].Extract(ctx, raw)
}

// SupportedMIMETypes returns the registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.extractors))
	for mimeType := range r.extractors {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}
