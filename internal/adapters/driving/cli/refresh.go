package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <kind> <id>",
	Short: "Re-fetch a single record and its subtree",
	Long: `Fetches the record again from the source, overwriting the stored copy,
and expands any references it carries that are not yet materialised.
Kind is a resource type such as task, project or user.`,
	Args: cobra.ExactArgs(2),
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ensureServices(ctx, false); err != nil {
		return err
	}
	defer closeServices()

	ref := domain.Reference{ID: args[1], Kind: kind}
	if err := crawlerService.Refresh(ctx, ref); err != nil {
		return fmt.Errorf("refresh %s %s: %w", kind, args[1], err)
	}

	cmd.Printf("Refreshed %s %s.\n", kind, args[1])
	return nil
}
