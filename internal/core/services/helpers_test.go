package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// sliceSource lists fixed items; content and load failures are keyed by URI.
type sliceSource struct {
	items   []domain.RawDocument
	content map[string][]byte
	loadErr map[string]error
	listErr error
}

func newSliceSource(uris ...string) *sliceSource {
	s := &sliceSource{content: map[string][]byte{}, loadErr: map[string]error{}}
	for _, uri := range uris {
		s.items = append(s.items, domain.RawDocument{URI: uri, MIMEType: "text/plain"})
		s.content[uri] = []byte(uri)
	}
	return s
}

func (s *sliceSource) List(_ context.Context) ([]domain.RawDocument, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.RawDocument(nil), s.items...), nil
}

func (s *sliceSource) Load(_ context.Context, raw *domain.RawDocument) error {
	if err, ok := s.loadErr[raw.URI]; ok {
		return err
	}
	raw.Content = s.content[raw.URI]
	return nil
}

// mapExtractor returns texts keyed by URI, or errors for URIs in fail.
type mapExtractor struct {
	texts map[string]string
	fail  map[string]error
	delay func(uri string) time.Duration
}

func (m *mapExtractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if m.delay != nil {
		time.Sleep(m.delay(raw.URI))
	}
	if err, ok := m.fail[raw.URI]; ok {
		return "", err
	}
	return m.texts[raw.URI], nil
}

func (m *mapExtractor) Register(_ driven.TextExtractor) {}

func (m *mapExtractor) SupportedMIMETypes() []string { return []string{"text/plain"} }

// countingMetrics counts every recorder call.
type countingMetrics struct {
	mu        sync.Mutex
	extracted int
	failed    int
	upserted  int
	upsertErr int
	stages    []string
}

func (c *countingMetrics) DocumentExtracted() { c.mu.Lock(); c.extracted++; c.mu.Unlock() }
func (c *countingMetrics) ExtractionFailed()  { c.mu.Lock(); c.failed++; c.mu.Unlock() }
func (c *countingMetrics) UpsertSucceeded()   { c.mu.Lock(); c.upserted++; c.mu.Unlock() }
func (c *countingMetrics) UpsertFailed()      { c.mu.Lock(); c.upsertErr++; c.mu.Unlock() }
func (c *countingMetrics) ObserveStage(stage string, _ time.Duration) {
	c.mu.Lock()
	c.stages = append(c.stages, stage)
	c.mu.Unlock()
}

var errCorrupt = errors.New("corrupt file")

// captureLogs routes JSON log lines into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	require.NoError(t, logger.SetFormat(logger.FormatJSON))
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		_ = logger.SetFormat(logger.FormatAuto)
	})
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

// linesWith returns the log lines whose level and message match.
func linesWith(lines []map[string]any, level, message string) []map[string]any {
	var out []map[string]any
	for _, l := range lines {
		if l["level"] == level && l["message"] == message {
			out = append(out, l)
		}
	}
	return out
}
