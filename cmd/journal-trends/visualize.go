package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/viz"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render keyword trend charts from the prevalence table",
	Long: `Visualize collapses the prevalence table across journals into yearly
percentages per keyword and renders two figures: a small-multiples PNG
(one panel per keyword) and an interactive HTML line chart overlaying
all keywords.`,
	RunE: runVisualize,
}

func init() {
	visualizeCmd.Flags().Int("year-min", 0, "left edge of the year grid (default 2010)")
	visualizeCmd.Flags().Int("cols", 3, "small-multiples column count")
	visualizeCmd.Flags().String("title", "", "interactive chart title")
	rootCmd.AddCommand(visualizeCmd)
}

func runVisualize(cmd *cobra.Command, args []string) error {
	cols, _ := cmd.Flags().GetInt("cols")
	title, _ := cmd.Flags().GetString("title")

	opts := viz.Options{
		Sheet:   stringSetting(cmd, "sheet", "sheet", defaultSheet),
		OutDir:  stringSetting(cmd, "out-dir", "out_dir", defaultOutDir),
		YearMin: intSetting(cmd, "year-min", "from_year", defaultFromYear),
		Cols:    cols,
		Title:   title,
	}
	return viz.Run(opts, os.Stdout)
}
