package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no extractor handles a source format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Per-item errors. These are logged and isolated to the item that raised them.

	// ErrExtraction indicates a single source file could not be turned into text.
	// The file is skipped and consumes no ordinal.
	ErrExtraction = errors.New("text extraction failed")

	// ErrIndex indicates the vector index rejected or failed a single metadata upsert.
	ErrIndex = errors.New("vector index operation failed")

	// Pipeline-fatal errors. These stop the run before modeling or synchronisation.

	// ErrEmptyCorpus indicates no document survived extraction.
	ErrEmptyCorpus = errors.New("no documents were found or extracted")

	// ErrEmptyVocabulary indicates no terms remain after stop word removal.
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents may only contain stop words")

	// ErrInvalidTopicCount indicates the topic count is outside [1, document count].
	ErrInvalidTopicCount = errors.New("invalid topic count")

	// ErrIndexUnavailable indicates the vector index is not configured.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
