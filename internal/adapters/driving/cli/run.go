package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract topics and write them to the vector index",
	Long: `Builds the corpus from the source directory, fits the topic model and
writes topics and topic_distribution metadata on doc_0 .. doc_<n-1>.

The index is created first when it does not exist, unless --skip-provision
is given. With --dry-run the records are printed and nothing is sent.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runDryRun        bool
	runSkipProvision bool
)

func init() {
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the records instead of sending them")
	runCmd.Flags().BoolVar(&runSkipProvision, "skip-provision", false, "do not create the index when it is missing")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd, !runDryRun, runDryRun)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	report, err := rt.Pipeline.Run(ctx, driving.RunOptions{SkipProvision: runSkipProvision})
	var runID string
	if report != nil {
		runID = report.RunID
	}
	rt.finish(ctx, runID)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if runDryRun {
		printRecords(cmd, report.Records)
	}
	cmd.Printf("Pairing: %s\n", rt.Settings.Topics.Pairing.Description())
	cmd.Printf("Updated %d of %d documents (%d failed, %d unpaired, %d files skipped)\n",
		report.Updated, report.Corpus.Len(), report.Failed, report.Unpaired, report.Corpus.Skipped)
	return nil
}

func printRecords(cmd *cobra.Command, records []domain.MetadataRecord) {
	for _, rec := range records {
		cmd.Printf("%s\ttopics=%s\tdistribution=%s\n",
			rec.ID, strings.Join(rec.Topics, ","), strings.Join(rec.TopicDistribution, ","))
	}
}
