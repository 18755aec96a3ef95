// Package cli provides the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/workmirror/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfigDir string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "workmirror",
	Short: "Mirror an Asana workspace into a searchable local store",
	Long: `workmirror crawls an Asana workspace and mirrors its projects, tasks
and surrounding records into a local document store, with optional
semantic embeddings in a vector index.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default ~/.workmirror)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
