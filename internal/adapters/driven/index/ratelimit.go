package index

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.MetadataIndex = (*RateLimited)(nil)

// RateLimited spaces out metadata updates with a token bucket.
type RateLimited struct {
	next    driven.MetadataIndex
	limiter *rate.Limiter
}

// WithRateLimit wraps next so that at most perSecond updates start each
// second, with no bursts. A non-positive rate returns next unchanged.
func WithRateLimit(next driven.MetadataIndex, perSecond float64) driven.MetadataIndex {
	if perSecond <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// UpdateMetadata waits for a token, then delegates.
func (r *RateLimited) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: rate limit: %w", domain.ErrIndex, id, err)
	}
	return r.next.UpdateMetadata(ctx, id, metadata)
}

// Close closes the wrapped index.
func (r *RateLimited) Close() error {
	return r.next.Close()
}
