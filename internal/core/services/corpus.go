package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// CorpusBuilder turns a document source into an ordinal-indexed corpus.
type CorpusBuilder struct {
	source    driven.DocumentSource
	extractor driven.ExtractorRegistry
	metrics   driven.Metrics
	workers   int
}

// NewCorpusBuilder creates a corpus builder.
// workers bounds concurrent extractions; values below 1 mean 1.
func NewCorpusBuilder(
	source driven.DocumentSource,
	extractor driven.ExtractorRegistry,
	metrics driven.Metrics,
	workers int,
) *CorpusBuilder {
	if workers < 1 {
		workers = 1
	}
	return &CorpusBuilder{
		source:    source,
		extractor: extractor,
		metrics:   orNop(metrics),
		workers:   workers,
	}
}

// Build lists the source and extracts every item.
// Items that fail or yield only whitespace are logged and skipped without
// consuming an ordinal. Ordinals follow the source's listing order no matter
// which extraction finishes first. An empty result is not an error here.
func (b *CorpusBuilder) Build(ctx context.Context) (*domain.Corpus, error) {
	start := time.Now()
	defer func() { b.metrics.ObserveStage(StageExtract, time.Since(start)) }()

	items, err := b.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Found %d source items", len(items))

	texts := make([]string, len(items))
	ok := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := b.extract(gctx, &items[i])
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.FromContext(ctx).Error().Str("uri", items[i].URI).Err(err).Msg("extraction failed")
				return nil
			}
			if text == "" {
				logger.FromContext(ctx).Warn().Str("uri", items[i].URI).Msg("no text extracted, skipping")
				return nil
			}
			texts[i], ok[i] = text, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := &domain.Corpus{Documents: make([]domain.Document, 0, len(items))}
	for i := range items {
		if !ok[i] {
			corpus.Skipped++
			b.metrics.ExtractionFailed()
			continue
		}
		corpus.Documents = append(corpus.Documents, domain.Document{
			Ordinal: len(corpus.Documents),
			URI:     items[i].URI,
			Text:    texts[i],
		})
		b.metrics.DocumentExtracted()
	}

	logger.Debug("Corpus built: %d documents, %d skipped", corpus.Len(), corpus.Skipped)
	return corpus, nil
}

func (b *CorpusBuilder) extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if err := b.source.Load(ctx, raw); err != nil {
		return "", err
	}
	// Release the bytes once extracted; only the text is kept.
	defer func() { raw.Content = nil }()

	text, err := b.extractor.Extract(ctx, raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
