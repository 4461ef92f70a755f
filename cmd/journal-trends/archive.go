package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-trends/internal/archive"
	"github.com/pdiddy/journal-trends/internal/artifact"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the searchable work archive (build, query)",
	Long: `Archive maintains a local SQLite index of resolved journals, raw works,
and keyword hits, with FTS5 full-text search over titles and abstracts.
Use subcommands to rebuild the index from the stage artifacts or to
query it.`,
}

var archiveBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the archive from the raw works and hit artifacts",
	RunE:  runArchiveBuild,
}

var archiveQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the archive with full-text search and filters",
	Long: `Query searches the archive using FTS5 full-text search over titles and
abstracts, structured filters (--journal, --keyword, --year), or a
combination of both.`,
	RunE: runArchiveQuery,
}

func init() {
	archiveQueryCmd.Flags().String("journal", "", "filter by journal name (substring)")
	archiveQueryCmd.Flags().String("keyword", "", "filter by keyword label (exact)")
	archiveQueryCmd.Flags().Int("year", 0, "filter by publication year")
	archiveQueryCmd.Flags().Int("limit", 20, "maximum number of results")
	archiveQueryCmd.Flags().Bool("json", false, "output results as JSON")

	archiveCmd.AddCommand(archiveBuildCmd)
	archiveCmd.AddCommand(archiveQueryCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive(cmd *cobra.Command) (*archive.Store, string, string, error) {
	sheet := stringSetting(cmd, "sheet", "sheet", defaultSheet)
	outDir := stringSetting(cmd, "out-dir", "out_dir", defaultOutDir)

	store, err := archive.Open(artifact.IndexDBPath(outDir))
	if err != nil {
		return nil, "", "", err
	}
	return store, sheet, outDir, nil
}

func runArchiveBuild(cmd *cobra.Command, args []string) error {
	store, sheet, outDir, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := artifact.ReadRawWorks(artifact.RawWorksPath(outDir, sheet))
	if err != nil {
		return err
	}
	hits, err := artifact.ReadHits(artifact.HitsPath(outDir, sheet))
	if err != nil {
		return err
	}

	summary, err := store.Build(context.Background(), records, hits, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("archive rebuilt: %d journals, %d works, %d hits\n",
		summary.Journals, summary.Works, summary.Hits)
	return nil
}

func runArchiveQuery(cmd *cobra.Command, args []string) error {
	store, _, _, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	journal, _ := cmd.Flags().GetString("journal")
	keyword, _ := cmd.Flags().GetString("keyword")
	year, _ := cmd.Flags().GetInt("year")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := archive.QueryOptions{
		Text:    strings.Join(args, " "),
		Journal: journal,
		Keyword: keyword,
		Year:    year,
		Limit:   limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --journal, --keyword, or --year")
	}

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-50s  %-30s  %s\n",
		"Rank", "Year", "Title", "Journal", "Keywords")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		journalName := r.Journal
		if len(journalName) > 30 {
			journalName = journalName[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6d  %-50s  %-30s  %s\n",
			i+1, r.Year, title, journalName, r.Keywords)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}
