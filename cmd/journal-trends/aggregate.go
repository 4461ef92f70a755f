package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/aggregate"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Compute per-(journal, year, keyword) prevalence",
	Long: `Aggregate joins the hit table with the raw works artifact and counts,
for every journal and year, the distinct articles hit by each keyword
label alongside the total distinct articles, deriving share and
percentage. The output table is regenerated from scratch on every run.`,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	opts := aggregate.Options{
		Sheet:  stringSetting(cmd, "sheet", "sheet", defaultSheet),
		OutDir: stringSetting(cmd, "out-dir", "out_dir", defaultOutDir),
	}
	return aggregate.Run(opts, os.Stdout)
}
