package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the vector index",
}

var indexEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the vector index if it does not exist",
	Long: `Creates a serverless index with the configured name, dimension and metric.
An existing index with the same name is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runIndexEnsure,
}

func init() {
	indexCmd.AddCommand(indexEnsureCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexEnsure(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd, true, false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	defer rt.finish(ctx, "")

	if rt.Provisioner == nil {
		return errors.New("index provisioner not configured")
	}

	spec := driven.IndexSpec{
		Name:      rt.Settings.Index.Name,
		Dimension: rt.Settings.Index.Dimension,
		Metric:    rt.Settings.Index.Metric,
	}
	created, err := rt.Provisioner.EnsureIndex(ctx, spec)
	if err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	if created {
		cmd.Printf("Index %s created (dimension %d, metric %s)\n", spec.Name, spec.Dimension, spec.Metric)
	} else {
		cmd.Printf("Index %s already exists\n", spec.Name)
	}
	return nil
}
