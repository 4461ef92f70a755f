package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/keywords"
	"github.com/pdiddy/journal-trends/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan reconstructed abstracts against the keyword rule table",
	Long: `Scan reads the raw works artifact, rebuilds each abstract from its
inverted index, and tests it against every keyword rule. It writes the
hit table (one row per work and matching rule) and a summary table of
hit counts per journal, keyword, and year.

Acronym patterns match case-sensitively; all other patterns are
case-insensitive. A rule with an invalid pattern never matches but does
not abort the scan.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("rules", "", "custom keyword rules YAML (default: built-in table)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	opts := scan.Options{
		Sheet:  stringSetting(cmd, "sheet", "sheet", defaultSheet),
		OutDir: stringSetting(cmd, "out-dir", "out_dir", defaultOutDir),
	}

	if rulesPath := stringSetting(cmd, "rules", "rules", ""); rulesPath != "" {
		rules, err := keywords.LoadRules(rulesPath)
		if err != nil {
			return err
		}
		opts.Rules = rules
	}

	return scan.Run(opts, os.Stdout)
}
