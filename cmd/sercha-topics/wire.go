package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/index"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/index/pinecone"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/metrics"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-topics/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/core/services"
	"github.com/custodia-labs/sercha-topics/internal/logger"
	"github.com/custodia-labs/sercha-topics/internal/normalisers"
	"github.com/custodia-labs/sercha-topics/internal/normalisers/docx"
	"github.com/custodia-labs/sercha-topics/internal/normalisers/html"
	"github.com/custodia-labs/sercha-topics/internal/normalisers/markdown"
	"github.com/custodia-labs/sercha-topics/internal/normalisers/pdf"
	"github.com/custodia-labs/sercha-topics/internal/normalisers/plaintext"
	"github.com/custodia-labs/sercha-topics/internal/topicmodel"
)

// wiring builds production adapters for each command.
type wiring struct {
	// envFiles overrides the dotenv files read. Nil reads ./.env.
	envFiles []string
}

// Build resolves the layered configuration and constructs the pipeline.
func (w wiring) Build(_ context.Context, opts cli.BuildOptions) (*cli.Runtime, error) {
	store, err := w.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration: %s", store.Path())

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if err := settingsService.Validate(settings, opts.RequireIndex); err != nil {
		return nil, err
	}

	stopWords, err := topicmodel.ResolveStopWords(settings.Topics.StopWords)
	if err != nil {
		return nil, err
	}

	remote, provisioner, err := openIndex(settings.Index, opts.DryRun)
	if err != nil {
		return nil, err
	}
	idx := index.WithRateLimit(remote, settings.Index.RateLimit)

	recorder := metrics.NewRecorder()
	pipeline := services.NewTopicPipeline(services.PipelineDeps{
		Source:      filesystem.New(settings.Source.Dir, settings.Source.Extensions...),
		Extractor:   normalisers.NewRegistry(pdf.New(), docx.New(), html.New(), markdown.New(), plaintext.New()),
		Vectoriser:  topicmodel.NewCountVectoriser(stopWords),
		Model:       topicmodel.NewLDA(),
		Index:       idx,
		Provisioner: provisioner,
		Metrics:     recorder,
	}, *settings)

	pushgateway, job := settings.Metrics.Pushgateway, settings.Metrics.Job
	return &cli.Runtime{
		Settings:    *settings,
		Pipeline:    pipeline,
		Provisioner: provisioner,
		Finish: func(ctx context.Context, runID string) {
			if err := idx.Close(); err != nil {
				logger.L().Warn().Err(err).Msg("closing index failed")
			}
			if pushgateway == "" {
				return
			}
			if err := recorder.Push(context.WithoutCancel(ctx), pushgateway, job, runID); err != nil {
				logger.L().Warn().Err(err).Msg("metrics push failed")
			}
		},
	}, nil
}

// loadConfig layers the TOML file, the environment and the flag overrides.
func (w wiring) loadConfig(opts cli.BuildOptions) (driven.ConfigStore, error) {
	fileStore, err := file.NewConfigStore(opts.ConfigPath, opts.ConfigRequired)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	envStore, err := env.NewConfigStore(w.envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	return config.NewLayered(fileStore, envStore, opts.Overrides), nil
}

// openIndex returns the metadata index and its provisioner. Dry runs and
// unconfigured indexes use the in-memory index.
func openIndex(s domain.IndexSettings, dryRun bool) (driven.MetadataIndex, driven.IndexProvisioner, error) {
	if dryRun || !s.IsConfigured() {
		m := memory.New()
		return m, m, nil
	}
	p, err := pinecone.New(pinecone.Config{
		APIKey:    s.APIKey,
		Name:      s.Name,
		Host:      s.Host,
		Namespace: s.Namespace,
		Cloud:     s.Cloud,
		Region:    s.Region,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, p, nil
}
