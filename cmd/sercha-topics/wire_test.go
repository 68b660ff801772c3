package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/memory"
	idxmemory "github.com/custodia-labs/sercha-topics/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/index/pinecone"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// isolate clears every recognised environment variable and returns
// wiring that reads no dotenv file.
func isolate(t *testing.T) wiring {
	t.Helper()
	for _, name := range env.Names {
		t.Setenv(name, "")
	}
	return wiring{envFiles: []string{filepath.Join(t.TempDir(), "absent.env")}}
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":     "solar panel photovoltaic inverter rooftop sunlight",
		"b.txt":     "wind turbine blade rotor offshore gearbox",
		"c.txt":     "solar sunlight rooftop panel cells silicon",
		"notes.pdf": "not a pdf",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sercha-topics.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func corpusConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeConfig(t, `
[source]
dir = "`+filepath.ToSlash(dir)+`"
extensions = [".txt"]

[topics]
count = 2
`)
}

func TestWiring_Build_DryRunEndToEnd(t *testing.T) {
	w := isolate(t)
	path := corpusConfig(t, writeCorpus(t))

	rt, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, ConfigRequired: true, DryRun: true})
	require.NoError(t, err)
	defer rt.Finish(context.Background(), "")

	assert.Equal(t, 2, rt.Settings.Topics.Count)
	assert.Equal(t, []string{".txt"}, rt.Settings.Source.Extensions)
	assert.IsType(t, &idxmemory.Index{}, rt.Provisioner)

	report, err := rt.Pipeline.Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Corpus.Len())
	assert.Equal(t, 3, report.Updated)
	assert.Equal(t, []string{"doc_0", "doc_1", "doc_2"}, recordIDs(report.Records))
}

func TestWiring_Build_PrecedenceFlagsOverEnvOverFile(t *testing.T) {
	w := isolate(t)
	path := corpusConfig(t, t.TempDir())
	t.Setenv("SERCHA_TOPICS_COUNT", "4")

	rt, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 4, rt.Settings.Topics.Count)

	flags := memory.NewConfigStore()
	_ = flags.Set(domain.KeyTopicsCount, "5")
	rt, err = w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, Overrides: flags, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 5, rt.Settings.Topics.Count)
}

func TestWiring_Build_MissingOptionalConfig(t *testing.T) {
	w := isolate(t)
	missing := filepath.Join(t.TempDir(), "sercha-topics.toml")

	rt, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: missing, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPipelineSettings().Topics, rt.Settings.Topics)
}

func TestWiring_Build_MissingRequiredConfig(t *testing.T) {
	w := isolate(t)
	missing := filepath.Join(t.TempDir(), "other.toml")

	_, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: missing, ConfigRequired: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestWiring_Build_InvalidSettings(t *testing.T) {
	w := isolate(t)
	path := writeConfig(t, "[topics]\ncount = 0\npairing = \"zip\"\n")

	_, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, DryRun: true})

	assert.ErrorIs(t, err, domain.ErrInvalidTopicCount)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWiring_Build_RequireIndex(t *testing.T) {
	w := isolate(t)
	path := writeConfig(t, "")

	_, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, RequireIndex: true})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)

	t.Setenv("PINECONE_INDEX_NAME", "papers")
	t.Setenv("PINECONE_API_KEY", "test-key")
	rt, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: path, RequireIndex: true})
	require.NoError(t, err)
	assert.IsType(t, &pinecone.Index{}, rt.Provisioner)
	assert.Equal(t, "papers", rt.Settings.Index.Name)
}

func TestWiring_Build_UnknownStopWordSelector(t *testing.T) {
	w := isolate(t)
	t.Setenv("SERCHA_TOPICS_STOP_WORDS", "english,none")

	_, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: writeConfig(t, ""), DryRun: true})
	assert.Error(t, err)
}

func TestWiring_Finish_PushesMetricsAndToleratesFailure(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/run_id/run-9"), r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	require.NoError(t, logger.SetFormat(logger.FormatJSON))
	defer func() {
		logger.SetOutput(os.Stderr)
		_ = logger.SetFormat(logger.FormatAuto)
	}()

	w := isolate(t)
	t.Setenv("SERCHA_TOPICS_PUSHGATEWAY", server.URL)

	rt, err := w.Build(context.Background(), cli.BuildOptions{ConfigPath: writeConfig(t, ""), DryRun: true})
	require.NoError(t, err)

	rt.Finish(context.Background(), "run-9")

	assert.EqualValues(t, 1, hits.Load())
	assert.Contains(t, logs.String(), "metrics push failed")
}

func recordIDs(records []domain.MetadataRecord) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids
}
