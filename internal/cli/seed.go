package cli

import (
	"github.com/spf13/cobra"

	"questjournal/internal/client"
)

var seedURL string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample quests and journal entries into a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		base := cfg.Client.BaseURL
		if seedURL != "" {
			base = seedURL
		}
		return client.Seed(client.New(base, cfg.Client.Timeout), cmd.OutOrStdout())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedURL, "url", "", "server base URL (overrides QJ_BASE_URL)")
}
