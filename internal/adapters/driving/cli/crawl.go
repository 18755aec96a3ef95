package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Run a full crawl of the configured workspace",
	Long: `Walks the workspace hierarchy: organisation-level records first, then
every client project and its full subtree of tasks, sections, status
updates and comments. Records already materialised are skipped, so
repeated runs only pick up new resources.`,
	RunE: runCrawl,
}

var flagDryRun bool

func init() {
	crawlCmd.Flags().BoolVar(&flagDryRun, "dry-run", false,
		"crawl into memory only, without touching the document store or vector index")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx, flagDryRun); err != nil {
		return err
	}
	defer closeServices()

	if flagDryRun {
		cmd.Println("Starting crawl (dry run, nothing will be persisted)...")
	} else {
		cmd.Println("Starting crawl...")
	}

	summary, err := crawlerService.RunCrawl(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary domain.Summary) {
	if summary.Total() == 0 {
		cmd.Println("Crawl complete. No new records.")
		return
	}

	kinds := make([]string, 0, len(summary))
	for k := range summary {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	cmd.Printf("Crawl complete. %d records materialised:\n", summary.Total())
	for _, k := range kinds {
		cmd.Printf("  %-18s %d\n", k, summary[domain.Kind(k)])
	}
}
