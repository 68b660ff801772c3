package driven

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// Vectoriser converts ordered texts into a term-count matrix.
type Vectoriser interface {
	// Vectorise returns one matrix row per text, in input order.
	// Returns domain.ErrEmptyVocabulary when no term survives stop word removal.
	Vectorise(ctx context.Context, texts []string) (*domain.TermMatrix, error)
}

// TopicModel fits latent topics over a term-count matrix.
type TopicModel interface {
	// Fit returns the document-topic distributions and per-topic word rankings.
	// Identical input and params must produce identical output.
	// Returns domain.ErrInvalidTopicCount when params.Topics is outside [1, documents].
	Fit(ctx context.Context, m *domain.TermMatrix, params domain.TopicParams) (*domain.TopicFit, error)
}
