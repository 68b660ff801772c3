package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

func recordsFor(n int) []domain.MetadataRecord {
	records := make([]domain.MetadataRecord, n)
	for i := range records {
		records[i] = domain.MetadataRecord{
			ID:                domain.DocumentID(i),
			Ordinal:           i,
			Topics:            []string{"topic", "words"},
			TopicDistribution: []string{"1.0000000000"},
		}
	}
	return records
}

func TestSynchroniser_FailureIsolated(t *testing.T) {
	buf := captureLogs(t)
	index := memory.New()
	index.FailOn("doc_1", errors.New("record not found"))
	metrics := &countingMetrics{}

	result, err := NewSynchroniser(index, metrics, 1).Sync(context.Background(), recordsFor(4))
	require.NoError(t, err)

	assert.Equal(t, SyncResult{Updated: 3, Failed: 1}, result)
	assert.Equal(t, []string{"doc_0", "doc_1", "doc_2", "doc_3"}, index.Calls())
	assert.Equal(t, []string{"doc_0", "doc_2", "doc_3"}, index.IDs())
	assert.Equal(t, 3, metrics.upserted)
	assert.Equal(t, 1, metrics.upsertErr)

	lines := logLines(t, buf)
	updated := linesWith(lines, "info", "metadata updated")
	require.Len(t, updated, 3)
	assert.Equal(t, "doc_0", updated[0]["id"])
	assert.Equal(t, []any{"topic", "words"}, updated[0]["topics"])

	failed := linesWith(lines, "error", "metadata update failed")
	require.Len(t, failed, 1)
	assert.Equal(t, "doc_1", failed[0]["id"])
	assert.Contains(t, failed[0]["error"], "record not found")
}

func TestSynchroniser_EveryRecordFails(t *testing.T) {
	captureLogs(t)
	index := memory.New()
	for i := 0; i < 3; i++ {
		index.FailOn(domain.DocumentID(i), errors.New("down"))
	}

	result, err := NewSynchroniser(index, nil, 1).Sync(context.Background(), recordsFor(3))
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Failed: 3}, result)
	assert.Len(t, index.Calls(), 3)
}

func TestSynchroniser_Workers(t *testing.T) {
	captureLogs(t)
	index := memory.New()
	index.FailOn("doc_7", errors.New("boom"))

	result, err := NewSynchroniser(index, nil, 4).Sync(context.Background(), recordsFor(20))
	require.NoError(t, err)

	assert.Equal(t, SyncResult{Updated: 19, Failed: 1}, result)
	assert.Len(t, index.Calls(), 20)
	assert.ElementsMatch(t, recordIDs(20), index.Calls())
}

func TestSynchroniser_Empty(t *testing.T) {
	index := memory.New()

	result, err := NewSynchroniser(index, nil, 1).Sync(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{}, result)
	assert.Empty(t, index.Calls())
}

func TestSynchroniser_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	index := memory.New()

	_, err := NewSynchroniser(index, nil, 1).Sync(ctx, recordsFor(3))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, index.Calls())
}

func recordIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = domain.DocumentID(i)
	}
	return ids
}
