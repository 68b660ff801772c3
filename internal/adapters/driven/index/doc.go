// Package index holds vector index adapters and decorators that apply to
// any of them.
//
// Adapters:
//   - memory: in-process index for dry runs and tests
//   - pinecone: Pinecone serverless index
package index
