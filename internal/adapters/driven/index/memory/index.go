// Package memory provides an in-process vector index.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure Index implements the interfaces.
var (
	_ driven.MetadataIndex    = (*Index)(nil)
	_ driven.IndexProvisioner = (*Index)(nil)
)

// Index keeps metadata in a map. Failures can be injected per id, which
// makes it the test double for remote indexes as well as the dry-run target.
type Index struct {
	mu       sync.RWMutex
	metadata map[string]map[string]any
	failures map[string]error
	indexes  map[string]driven.IndexSpec
	calls    []string
	closed   bool
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{
		metadata: make(map[string]map[string]any),
		failures: make(map[string]error),
		indexes:  make(map[string]driven.IndexSpec),
	}
}

// FailOn makes every update of id return err.
func (x *Index) FailOn(id string, err error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.failures[id] = err
}

// UpdateMetadata merges metadata into the record for id.
func (x *Index) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return fmt.Errorf("%w: index closed", domain.ErrIndex)
	}
	x.calls = append(x.calls, id)
	if err, ok := x.failures[id]; ok {
		return fmt.Errorf("%w: %s: %w", domain.ErrIndex, id, err)
	}

	rec, ok := x.metadata[id]
	if !ok {
		rec = make(map[string]any, len(metadata))
		x.metadata[id] = rec
	}
	for k, v := range metadata {
		rec[k] = v
	}
	return nil
}

// EnsureIndex records spec under its name if absent.
func (x *Index) EnsureIndex(ctx context.Context, spec driven.IndexSpec) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.calls = append(x.calls, "ensure:"+spec.Name)
	if _, ok := x.indexes[spec.Name]; ok {
		return false, nil
	}
	x.indexes[spec.Name] = spec
	return true, nil
}

// Metadata returns a copy of the metadata stored for id.
func (x *Index) Metadata(id string) (map[string]any, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rec, ok := x.metadata[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out, true
}

// IDs returns the ids holding metadata, sorted.
func (x *Index) IDs() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	ids := make([]string, 0, len(x.metadata))
	for id := range x.metadata {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Calls returns every id passed to UpdateMetadata, and "ensure:<name>" for
// every EnsureIndex call, in call order.
func (x *Index) Calls() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]string(nil), x.calls...)
}

// Spec returns the provisioned spec for name.
func (x *Index) Spec(name string) (driven.IndexSpec, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	spec, ok := x.indexes[name]
	return spec, ok
}

// Close marks the index closed. Later updates fail.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	return nil
}

// Closed reports whether Close was called.
func (x *Index) Closed() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.closed
}
