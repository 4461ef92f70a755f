package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/extract"
	"github.com/pdiddy/journal-trends/internal/openalex"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch raw work records for every resolved journal",
	Long: `Extract resolves each journal in the selected sheet and pages through
all of its works published since the minimum year, writing the complete
raw records to a single JSON artifact. Journals with no OpenAlex match
are skipped with a warning; any API failure aborts the run.`,
	RunE: runExtract,
}

func init() {
	networkFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := fetchConfig(cmd)
	opts := pipelineOptions(cmd, cfg)
	client := openalex.NewClient(cfg)
	return extract.Run(context.Background(), client, opts, os.Stdout)
}
