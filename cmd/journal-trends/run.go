package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/aggregate"
	"github.com/pdiddy/journal-trends/internal/extract"
	"github.com/pdiddy/journal-trends/internal/keywords"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/internal/scan"
	"github.com/pdiddy/journal-trends/internal/viz"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: resolve, extract, scan, aggregate, visualize",
	Long: `Run executes every pipeline stage in order for the selected sheet.
Each stage writes its artifact before the next stage starts, so a failed
run can be resumed by invoking the remaining stages individually.`,
	RunE: runPipeline,
}

func init() {
	networkFlags(runCmd)
	runCmd.Flags().String("rules", "", "custom keyword rules YAML (default: built-in table)")
	runCmd.Flags().Int("cols", 3, "small-multiples column count")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := fetchConfig(cmd)
	opts := pipelineOptions(cmd, cfg)
	client := openalex.NewClient(cfg)

	if err := extract.Resolve(ctx, client, opts, os.Stdout); err != nil {
		return err
	}
	if err := extract.Run(ctx, client, opts, os.Stdout); err != nil {
		return err
	}

	scanOpts := scan.Options{Sheet: opts.Sheet, OutDir: opts.OutDir}
	if rulesPath := stringSetting(cmd, "rules", "rules", ""); rulesPath != "" {
		rules, err := keywords.LoadRules(rulesPath)
		if err != nil {
			return err
		}
		scanOpts.Rules = rules
	}
	if err := scan.Run(scanOpts, os.Stdout); err != nil {
		return err
	}

	if err := aggregate.Run(aggregate.Options{Sheet: opts.Sheet, OutDir: opts.OutDir}, os.Stdout); err != nil {
		return err
	}

	cols, _ := cmd.Flags().GetInt("cols")
	return viz.Run(viz.Options{
		Sheet:   opts.Sheet,
		OutDir:  opts.OutDir,
		YearMin: cfg.FromYear,
		Cols:    cols,
	}, os.Stdout)
}
