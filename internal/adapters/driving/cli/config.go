package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/workmirror/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(flagConfigDir)
	if err != nil {
		return err
	}
	if err := file.Save(flagConfigDir, cfg); err != nil {
		return err
	}

	dir := flagConfigDir
	if dir == "" {
		dir, err = file.DefaultConfigDir()
		if err != nil {
			return err
		}
	}
	cmd.Printf("Wrote %s/config.toml\n", dir)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(flagConfigDir)
	if err != nil {
		return err
	}

	cmd.Printf("Workspace:          %s\n", orUnset(cfg.Asana.WorkspaceID))
	cmd.Printf("Access token:       %s\n", redact(cfg.Asana.AccessToken))
	cmd.Printf("Webhook service:    %s\n", orUnset(cfg.Webhook.BaseURL))
	cmd.Printf("Data directory:     %s\n", orUnset(cfg.Storage.DataDir))
	cmd.Printf("Vector index:       enabled=%v %s:%d/%s\n",
		cfg.Qdrant.Enabled, cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.Collection)
	cmd.Printf("Embedding provider: %s\n", cfg.Embedding.Provider)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func redact(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "(set)"
}
