package driving

import (
	"context"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// TopicPipeline runs topic extraction and metadata synchronisation.
type TopicPipeline interface {
	// Run builds the corpus, fits the topic model and synchronises metadata.
	// Per-document failures are reported in RunReport, never returned.
	// The returned error is set only for pipeline-fatal conditions.
	Run(ctx context.Context, opts RunOptions) (*RunReport, error)

	// Model builds the corpus and fits the topic model without touching the index.
	Model(ctx context.Context) (*ModelReport, error)
}

// RunOptions adjusts a single run.
type RunOptions struct {
	// SkipProvision disables index creation before the first upsert.
	SkipProvision bool
}

// ModelReport is the output of the modeling stages.
type ModelReport struct {
	// RunID correlates the run's log lines.
	RunID string

	// Corpus is the extracted corpus.
	Corpus *domain.Corpus

	// VocabularySize is the number of retained terms.
	VocabularySize int

	// Fit is the fitted topic model output.
	Fit *domain.TopicFit
}

// RunReport summarises a full run.
type RunReport struct {
	ModelReport

	// Records are the metadata records built for synchronisation, in ordinal order.
	Records []domain.MetadataRecord

	// Updated is the number of successful upserts.
	Updated int

	// Failed is the number of failed upserts.
	Failed int

	// Unpaired is the number of documents left without a ranking (positional pairing only).
	Unpaired int
}
