package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// Ensure TopicPipeline implements the interface.
var _ driving.TopicPipeline = (*TopicPipeline)(nil)

// PipelineDeps are the collaborators of a TopicPipeline.
// Index and Provisioner may be nil for pipelines that only model.
type PipelineDeps struct {
	Source      driven.DocumentSource
	Extractor   driven.ExtractorRegistry
	Vectoriser  driven.Vectoriser
	Model       driven.TopicModel
	Index       driven.MetadataIndex
	Provisioner driven.IndexProvisioner
	Metrics     driven.Metrics
}

// TopicPipeline runs corpus building, vectorisation, topic fitting and
// metadata synchronisation in that order.
type TopicPipeline struct {
	corpus       *CorpusBuilder
	vectoriser   driven.Vectoriser
	model        driven.TopicModel
	synchroniser *Synchroniser
	provisioner  driven.IndexProvisioner
	metrics      driven.Metrics
	settings     domain.PipelineSettings
	newRunID     func() string
}

// NewTopicPipeline creates a pipeline from its collaborators and settings.
func NewTopicPipeline(deps PipelineDeps, settings domain.PipelineSettings) *TopicPipeline {
	metrics := orNop(deps.Metrics)
	p := &TopicPipeline{
		corpus:      NewCorpusBuilder(deps.Source, deps.Extractor, metrics, settings.Source.Workers),
		vectoriser:  deps.Vectoriser,
		model:       deps.Model,
		provisioner: deps.Provisioner,
		metrics:     metrics,
		settings:    settings,
		newRunID:    uuid.NewString,
	}
	if deps.Index != nil {
		p.synchroniser = NewSynchroniser(deps.Index, metrics, settings.Index.Workers)
	}
	return p
}

// Model builds the corpus and fits the topic model.
func (p *TopicPipeline) Model(ctx context.Context) (*driving.ModelReport, error) {
	report := &driving.ModelReport{RunID: p.newRunID()}
	ctx = logger.NewContext(ctx, report.RunID)
	return report, p.buildModel(ctx, report)
}

// Run executes the whole pipeline. The index is provisioned only once a
// model exists, so a run that stops early makes no index calls.
func (p *TopicPipeline) Run(ctx context.Context, opts driving.RunOptions) (*driving.RunReport, error) {
	report := &driving.RunReport{ModelReport: driving.ModelReport{RunID: p.newRunID()}}
	ctx = logger.NewContext(ctx, report.RunID)
	log := logger.FromContext(ctx)

	if p.synchroniser == nil {
		return report, fmt.Errorf("%w: no index configured for synchronisation", domain.ErrIndexUnavailable)
	}

	if err := p.buildModel(ctx, &report.ModelReport); err != nil {
		return report, err
	}

	report.Records, report.Unpaired = BuildRecords(report.Corpus, report.Fit, p.settings.Topics.Pairing)
	for i := len(report.Records); i < report.Corpus.Len(); i++ {
		log.Warn().Str("id", domain.DocumentID(i)).Msg("no topic ranking paired with document, skipping")
	}

	if !opts.SkipProvision && p.provisioner != nil {
		if err := p.provision(ctx); err != nil {
			log.Error().Err(err).Msg("index provisioning failed")
			return report, err
		}
	}

	logger.Section("Synchronise")
	result, err := p.synchroniser.Sync(ctx, report.Records)
	report.Updated, report.Failed = result.Updated, result.Failed

	log.Info().
		Int("documents", report.Corpus.Len()).
		Int("updated", report.Updated).
		Int("failed", report.Failed).
		Int("unpaired", report.Unpaired).
		Int("skipped_files", report.Corpus.Skipped).
		Msg("run complete")

	if err != nil {
		return report, fmt.Errorf("synchronise: %w", err)
	}
	return report, nil
}

// buildModel runs the stages shared by Run and Model, filling report.
func (p *TopicPipeline) buildModel(ctx context.Context, report *driving.ModelReport) error {
	log := logger.FromContext(ctx)

	logger.Section("Extract")
	corpus, err := p.corpus.Build(ctx)
	if err != nil {
		log.Error().Err(err).Msg("corpus build failed")
		return err
	}
	report.Corpus = corpus
	if corpus.IsEmpty() {
		log.Error().Int("skipped_files", corpus.Skipped).Msg(domain.ErrEmptyCorpus.Error())
		return domain.ErrEmptyCorpus
	}
	log.Info().Int("documents", corpus.Len()).Int("skipped_files", corpus.Skipped).Msg("corpus built")

	logger.Section("Vectorise")
	start := time.Now()
	matrix, err := p.vectoriser.Vectorise(ctx, corpus.Texts())
	p.metrics.ObserveStage(StageVectorise, time.Since(start))
	if err != nil {
		log.Error().Err(err).Msg("vectorisation failed")
		return err
	}
	report.VocabularySize = matrix.NumTerms()
	logger.Debug("Vocabulary: %d terms", matrix.NumTerms())

	logger.Section("Fit")
	start = time.Now()
	fit, err := p.model.Fit(ctx, matrix, p.settings.Topics.TopicParams())
	p.metrics.ObserveStage(StageFit, time.Since(start))
	if err != nil {
		log.Error().Err(err).Msg("topic model fit failed")
		return err
	}
	report.Fit = fit
	for t, words := range fit.TopicWords {
		log.Debug().Int("topic", t).Strs("words", words).Msg("topic ranking")
	}
	return nil
}

// provision creates the index if absent.
func (p *TopicPipeline) provision(ctx context.Context) error {
	logger.Section("Provision")
	start := time.Now()
	defer func() { p.metrics.ObserveStage(StageProvision, time.Since(start)) }()

	spec := driven.IndexSpec{
		Name:      p.settings.Index.Name,
		Dimension: p.settings.Index.Dimension,
		Metric:    p.settings.Index.Metric,
	}
	created, err := p.provisioner.EnsureIndex(ctx, spec)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		return err
	}
	if created {
		logger.FromContext(ctx).Info().Str("index", spec.Name).Int("dimension", spec.Dimension).
			Str("metric", spec.Metric.String()).Msg("index created")
	}
	return nil
}
