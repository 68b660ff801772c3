package driven

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// MetadataIndex is the metadata side of a remote vector index.
// The pipeline never reads vectors; it only sets metadata on existing ids.
type MetadataIndex interface {
	// UpdateMetadata creates or replaces metadata fields of the record with the given id.
	// It is idempotent: repeating a call with the same arguments has no further effect.
	UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error

	// Close releases the connection. The index must not be used afterwards.
	Close() error
}

// IndexProvisioner creates the vector index when it does not exist yet.
type IndexProvisioner interface {
	// EnsureIndex creates the index described by spec if absent.
	// Returns true when the index was created by this call.
	EnsureIndex(ctx context.Context, spec IndexSpec) (bool, error)
}

// IndexSpec describes the index to provision.
type IndexSpec struct {
	// Name identifies the index.
	Name string

	// Dimension is the embedding dimensionality.
	Dimension int

	// Metric is the similarity metric.
	Metric domain.IndexMetric
}
