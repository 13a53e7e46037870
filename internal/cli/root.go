package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"questjournal/internal/config"
	"questjournal/internal/storage"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "questjournal",
	Short: "Quest and journal records for tabletop campaigns",
	Long: `questjournal stores campaign quests and per-character journal entries
in a local SQLite database and serves them over HTTP.

Run 'questjournal serve' to start the HTTP API, 'questjournal bot' to answer
lookups in a VK chat, and 'questjournal seed' to load sample data into a
running server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the root command.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetPrefix("[QUESTJOURNAL] ")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("QJ_CONFIG"), "TOML config file (env QJ_CONFIG)")
	rootCmd.AddCommand(serveCmd, botCmd, migrateCmd, seedCmd)
}

func openDB() (*storage.DB, error) {
	db, err := storage.Open(cfg.DB.Driver, cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	log.Printf("database %s opened with driver %s", cfg.DB.Path, db.Driver())
	return db, nil
}
