package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/scan"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export matched works as a CSL-YAML bibliography",
	Long: `Export writes the distinct works from the hit table as a CSL-YAML
bibliography consumable by Pandoc and reference managers. Each entry
carries the keyword labels that matched the work.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "bibliography path (default: <out-dir>/bibliography_<sheet>.yaml)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	sheet := stringSetting(cmd, "sheet", "sheet", defaultSheet)
	outDir := stringSetting(cmd, "out-dir", "out_dir", defaultOutDir)

	hits, err := artifact.ReadHits(artifact.HitsPath(outDir, sheet))
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = filepath.Join(outDir, "bibliography_"+artifact.SafeSheet(sheet)+".yaml")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating bibliography %s: %w", outPath, err)
	}
	defer f.Close()

	if err := scan.ExportCSL(hits, f); err != nil {
		return fmt.Errorf("writing bibliography: %w", err)
	}
	fmt.Printf("bibliography saved to %s\n", outPath)
	return nil
}
