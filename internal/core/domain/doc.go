// Package domain defines the core business entities for sercha-topics.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes from a document source
//   - Document: A successfully extracted document and its ordinal
//   - Corpus: The ordered set of documents for one run
//   - TermMatrix: Bag-of-words counts over a shared vocabulary
//   - TopicFit: Document-topic distributions and per-topic word rankings
//   - MetadataRecord: The topic metadata written to the vector index
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
