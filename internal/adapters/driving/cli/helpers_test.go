package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// mockPipeline implements driving.TopicPipeline for testing.
type mockPipeline struct {
	runReport   *driving.RunReport
	modelReport *driving.ModelReport
	err         error

	runOpts    driving.RunOptions
	runCalls   int
	modelCalls int
}

func (m *mockPipeline) Run(_ context.Context, opts driving.RunOptions) (*driving.RunReport, error) {
	m.runCalls++
	m.runOpts = opts
	return m.runReport, m.err
}

func (m *mockPipeline) Model(_ context.Context) (*driving.ModelReport, error) {
	m.modelCalls++
	return m.modelReport, m.err
}

// fakeBuilder returns a fixed Runtime and records how it was asked for.
type fakeBuilder struct {
	rt       *Runtime
	err      error
	opts     BuildOptions
	builds   int
	finished []string
}

func (b *fakeBuilder) Build(_ context.Context, opts BuildOptions) (*Runtime, error) {
	b.builds++
	b.opts = opts
	if b.err != nil {
		return nil, b.err
	}
	b.rt.Finish = func(_ context.Context, runID string) {
		b.finished = append(b.finished, runID)
	}
	return b.rt, nil
}

func testSettings() domain.PipelineSettings {
	s := domain.DefaultPipelineSettings()
	s.Index.Name = "papers"
	s.Index.APIKey = "key"
	return s
}

func sampleCorpus() *domain.Corpus {
	return &domain.Corpus{
		Documents: []domain.Document{
			{Ordinal: 0, URI: "file:///docs/a.pdf", Text: "solar panel"},
			{Ordinal: 1, URI: "file:///docs/b.pdf", Text: "wind turbine"},
		},
		Skipped: 1,
	}
}

func sampleFit() *domain.TopicFit {
	return &domain.TopicFit{
		DocumentTopics: [][]float64{{0.9, 0.1}, {0.2, 0.8}},
		TopicWords:     [][]string{{"solar", "panel"}, {"wind", "turbine"}},
	}
}

// setupBuilder installs b for the test and resets global command state afterwards.
func setupBuilder(t *testing.T, b Builder) *bytes.Buffer {
	t.Helper()
	oldBuilder := builder
	builder = b

	var logs bytes.Buffer
	logger.SetOutput(&logs)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	t.Cleanup(func() {
		builder = oldBuilder
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		logger.SetVerbose(false)
		_ = logger.SetFormat(logger.FormatAuto)
		logger.SetOutput(os.Stderr)
	})
	return buf
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
