package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/extract"
	"github.com/pdiddy/journal-trends/internal/openalex"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve input journals against the OpenAlex Sources index",
	Long: `Resolve reads the journal list from the input workbook and maps each
journal to an OpenAlex source, trying ISSN candidates in order before
falling back to a name search. The resolved table is written as YAML;
journals with no match are recorded with found=false and skipped by
later stages.`,
	RunE: runResolve,
}

func init() {
	networkFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := fetchConfig(cmd)
	opts := pipelineOptions(cmd, cfg)
	client := openalex.NewClient(cfg)
	return extract.Resolve(context.Background(), client, opts, os.Stdout)
}
