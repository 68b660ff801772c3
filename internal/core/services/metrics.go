package services

import (
	"time"

	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Pipeline stage names used for timing.
const (
	StageExtract   = "extract"
	StageVectorise = "vectorise"
	StageFit       = "fit"
	StageProvision = "provision"
	StageSync      = "sync"
)

// nopMetrics discards everything. Used when no recorder is configured.
type nopMetrics struct{}

func (nopMetrics) DocumentExtracted()                  {}
func (nopMetrics) ExtractionFailed()                   {}
func (nopMetrics) UpsertSucceeded()                    {}
func (nopMetrics) UpsertFailed()                       {}
func (nopMetrics) ObserveStage(string, time.Duration) {}

func orNop(m driven.Metrics) driven.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
