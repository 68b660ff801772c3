package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.Metrics = (*Recorder)(nil)

// Upsert result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder holds the run metrics on a private registry, so that a push
// carries this run only.
type Recorder struct {
	registry *prometheus.Registry

	DocumentsExtracted prometheus.Counter
	ExtractionFailures prometheus.Counter
	MetadataUpserts    *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
}

// NewRecorder creates and registers all run metrics.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		DocumentsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "sercha_topics_documents_extracted_total",
			Help: "Total number of documents that joined the corpus",
		}),
		ExtractionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sercha_topics_extraction_failures_total",
			Help: "Total number of source files skipped during extraction",
		}),
		MetadataUpserts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sercha_topics_metadata_upserts_total",
			Help: "Total number of metadata upsert attempts",
		}, []string{"result"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sercha_topics_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 300},
		}, []string{"stage"}),
	}
}

// Registry returns the registry holding the run metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// DocumentExtracted counts a document that joined the corpus.
func (r *Recorder) DocumentExtracted() {
	r.DocumentsExtracted.Inc()
}

// ExtractionFailed counts a skipped source item.
func (r *Recorder) ExtractionFailed() {
	r.ExtractionFailures.Inc()
}

// UpsertSucceeded counts a successful upsert.
func (r *Recorder) UpsertSucceeded() {
	r.MetadataUpserts.WithLabelValues(ResultSuccess).Inc()
}

// UpsertFailed counts a failed upsert.
func (r *Recorder) UpsertFailed() {
	r.MetadataUpserts.WithLabelValues(ResultFailure).Inc()
}

// ObserveStage records a stage duration.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Push sends the run metrics to the pushgateway at url under job.
// The run id is attached as a grouping label when set.
func (r *Recorder) Push(ctx context.Context, url, job, runID string) error {
	pusher := push.New(url, job).Gatherer(r.registry)
	if runID != "" {
		pusher = pusher.Grouping("run_id", runID)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
