package driven

import "time"

// Metrics records run counters and stage timings.
type Metrics interface {
	// DocumentExtracted counts a document that joined the corpus.
	DocumentExtracted()

	// ExtractionFailed counts a source item that was skipped.
	ExtractionFailed()

	// UpsertSucceeded counts a successful metadata upsert.
	UpsertSucceeded()

	// UpsertFailed counts a failed metadata upsert.
	UpsertFailed()

	// ObserveStage records how long a pipeline stage took.
	ObserveStage(stage string, d time.Duration)
}
