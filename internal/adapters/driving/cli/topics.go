package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Fit the topic model and print the result",
	Long: `Builds the corpus and fits the topic model, then prints each topic's word
ranking and each document's topic distribution. The index is never contacted.`,
	Args: cobra.NoArgs,
	RunE: runTopics,
}

func init() {
	addModelFlags(topicsCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd, false, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	report, err := rt.Pipeline.Model(ctx)
	var runID string
	if report != nil {
		runID = report.RunID
	}
	rt.finish(ctx, runID)
	if err != nil {
		return fmt.Errorf("topic modeling failed: %w", err)
	}

	cmd.Printf("Topics (%d):\n", report.Fit.NumTopics())
	for t, words := range report.Fit.TopicWords {
		cmd.Printf("  %d: %s\n", t, strings.Join(words, ", "))
	}

	cmd.Printf("Documents (%d, %d files skipped):\n", report.Corpus.Len(), report.Corpus.Skipped)
	for _, doc := range report.Corpus.Documents {
		weights := make([]string, 0, report.Fit.NumTopics())
		for _, w := range report.Fit.DocumentTopics[doc.Ordinal] {
			weights = append(weights, fmt.Sprintf("%.4f", w))
		}
		cmd.Printf("  %s  %s  [%s]\n", doc.ID(), doc.URI, strings.Join(weights, " "))
	}
	return nil
}
