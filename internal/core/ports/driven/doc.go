// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - DocumentSource: Enumerates and loads source documents
//   - TextExtractor: Turns one raw document into plain text
//   - ExtractorRegistry: Selects the extractor for a source format
//   - Vectoriser: Builds the term-count matrix
//   - TopicModel: Fits topics over the term-count matrix
//   - MetadataIndex: Upserts topic metadata by document id
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IndexProvisioner: Creates the index when absent. Without it, the index must already exist.
//   - Metrics: Run counters and timings. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
