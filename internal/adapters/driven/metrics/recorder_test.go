package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.DocumentExtracted()
	r.DocumentExtracted()
	r.ExtractionFailed()
	r.UpsertSucceeded()
	r.UpsertSucceeded()
	r.UpsertSucceeded()
	r.UpsertFailed()

	assert.InDelta(t, 2, testutil.ToFloat64(r.DocumentsExtracted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ExtractionFailures), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(r.MetadataUpserts.WithLabelValues(ResultSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.MetadataUpserts.WithLabelValues(ResultFailure)), 0)
}

func TestRecorder_ObserveStage(t *testing.T) {
	r := NewRecorder()

	r.ObserveStage("fit", 250*time.Millisecond)
	r.ObserveStage("sync", time.Second)

	assert.Equal(t, 2, testutil.CollectAndCount(r.StageDuration))
}

func TestRecorder_RegistryIsPrivate(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.DocumentExtracted()

	assert.InDelta(t, 0, testutil.ToFloat64(b.DocumentsExtracted), 0)
}

func TestRecorder_Push(t *testing.T) {
	var path string
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path = req.URL.Path
		data, _ := io.ReadAll(req.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.DocumentExtracted()

	require.NoError(t, r.Push(context.Background(), srv.URL, "sercha_topics", "run-1"))
	assert.Equal(t, "/metrics/job/sercha_topics/run_id/run-1", path)
	assert.NotEmpty(t, body)
}

func TestRecorder_PushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewRecorder().Push(context.Background(), srv.URL, "sercha_topics", "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), srv.URL))
}
