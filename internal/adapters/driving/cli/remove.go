package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

var removeCmd = &cobra.Command{
	Use:   "remove <kind> <id>",
	Short: "Remove a record from the local mirror",
	Long: `Deletes the record from the document store and drops its embedding
from the vector index. The upstream resource is untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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
	if err := crawlerService.Remove(ctx, ref); err != nil {
		return fmt.Errorf("remove %s %s: %w", kind, args[1], err)
	}

	cmd.Printf("Removed %s %s.\n", kind, args[1])
	return nil
}
