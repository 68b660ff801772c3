package services

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// SyncResult counts the outcome of one synchronisation pass.
type SyncResult struct {
	Updated int
	Failed  int
}

// Synchroniser writes metadata records into the vector index.
// Every record gets exactly one attempt; a failed record never stops the others.
type Synchroniser struct {
	index   driven.MetadataIndex
	metrics driven.Metrics
	workers int
}

// NewSynchroniser creates a synchroniser.
// workers bounds concurrent upserts; 1 issues them strictly in ordinal order.
func NewSynchroniser(index driven.MetadataIndex, metrics driven.Metrics, workers int) *Synchroniser {
	if workers < 1 {
		workers = 1
	}
	return &Synchroniser{
		index:   index,
		metrics: orNop(metrics),
		workers: workers,
	}
}

// Sync upserts every record. Only cancellation of ctx is returned as an
// error; records not yet attempted at that point are left untouched.
func (s *Synchroniser) Sync(ctx context.Context, records []domain.MetadataRecord) (SyncResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStage(StageSync, time.Since(start)) }()

	var updated, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i := range records {
		if ctx.Err() != nil {
			break
		}
		rec := records[i]
		g.Go(func() error {
			if s.upsert(ctx, rec) {
				updated.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	result := SyncResult{Updated: int(updated.Load()), Failed: int(failed.Load())}
	return result, ctx.Err()
}

// upsert makes the single attempt for rec and logs its outcome.
func (s *Synchroniser) upsert(ctx context.Context, rec domain.MetadataRecord) bool {
	log := logger.FromContext(ctx)
	if err := s.index.UpdateMetadata(ctx, rec.ID, rec.Metadata()); err != nil {
		s.metrics.UpsertFailed()
		log.Error().Str("id", rec.ID).Err(err).Msg("metadata update failed")
		return false
	}
	s.metrics.UpsertSucceeded()
	log.Info().Str("id", rec.ID).Strs("topics", rec.Topics).Msg("metadata updated")
	return true
}
