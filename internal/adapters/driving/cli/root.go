package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// Runtime holds the collaborators a command runs against.
type Runtime struct {
	// Settings are the resolved and validated settings.
	Settings domain.PipelineSettings

	// Pipeline runs the topic stages.
	Pipeline driving.TopicPipeline

	// Provisioner creates the index. Nil when no index is configured.
	Provisioner driven.IndexProvisioner

	// Finish releases the index connection and exports run metrics.
	// It runs once after the command, whatever the outcome. May be nil.
	Finish func(ctx context.Context, runID string)
}

func (r *Runtime) finish(ctx context.Context, runID string) {
	if r.Finish != nil {
		r.Finish(ctx, runID)
	}
}

// BuildOptions describe what a command needs from its Runtime.
type BuildOptions struct {
	// ConfigPath is the TOML file to read.
	ConfigPath string

	// ConfigRequired is set when the file was named explicitly, so a missing file is an error.
	ConfigRequired bool

	// Overrides carries the values of flags set on the command line.
	Overrides driven.ConfigStore

	// RequireIndex makes missing index credentials a validation error.
	RequireIndex bool

	// DryRun replaces the remote index with an in-memory one.
	DryRun bool
}

// Builder constructs the Runtime of a command.
type Builder interface {
	Build(ctx context.Context, opts BuildOptions) (*Runtime, error)
}

var (
	version = "dev"

	// builder is injected by main via Execute.
	builder Builder

	configPath    string
	verboseFlag   bool
	logFormatFlag string
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"dir":        domain.KeySourceDir,
	"topics":     domain.KeyTopicsCount,
	"top-words":  domain.KeyTopicsTopWords,
	"pairing":    domain.KeyTopicsPairing,
	"seed":       domain.KeyTopicsSeed,
	"verbose":    domain.KeyLogVerbose,
	"log-format": domain.KeyLogFormat,
}

var rootCmd = &cobra.Command{
	Use:   "sercha-topics",
	Short: "Tag vector index records with topic metadata",
	Long: `sercha-topics extracts text from a directory of documents, fits an LDA
topic model over the corpus and writes each document's topic words and
topic distribution as metadata on the record doc_<n> of a vector index.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if verboseFlag {
			logger.SetVerbose(true)
		}
		if logFormatFlag != "" {
			return logger.SetFormat(logFormatFlag)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", file.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log output: auto, json or console")
}

// Execute runs the command line with the given version and builder.
func Execute(ctx context.Context, v string, b Builder) error {
	version = v
	builder = b
	return rootCmd.ExecuteContext(ctx)
}

// addModelFlags registers the flags shared by commands that fit a model.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "directory holding the source documents")
	cmd.Flags().Int("topics", 0, "number of topics to fit")
	cmd.Flags().Int("top-words", 0, "number of words ranked per topic")
	cmd.Flags().String("pairing", "", "ranking attached to each document: dominant or positional")
	cmd.Flags().Uint64("seed", 0, "seed of the topic model initialisation")
}

// overrides returns a config layer holding every flag set on the command line.
func overrides(cmd *cobra.Command) driven.ConfigStore {
	store := memory.NewConfigStore()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			_ = store.Set(key, f.Value.String())
		}
	}
	return store
}

// buildRuntime resolves the Runtime for cmd and applies its log settings.
func buildRuntime(cmd *cobra.Command, requireIndex, dryRun bool) (*Runtime, error) {
	if builder == nil {
		return nil, errors.New("runtime builder not configured")
	}

	ctx := cmd.Context()
	rt, err := builder.Build(ctx, BuildOptions{
		ConfigPath:     configPath,
		ConfigRequired: cmd.Flags().Changed("config"),
		Overrides:      overrides(cmd),
		RequireIndex:   requireIndex,
		DryRun:         dryRun,
	})
	if err != nil {
		return nil, err
	}

	logger.SetVerbose(rt.Settings.Log.Verbose)
	if err := logger.SetFormat(string(rt.Settings.Log.Format)); err != nil {
		rt.finish(ctx, "")
		return nil, err
	}
	return rt, nil
}
