// Package cmd provides the finctl commands.
package cmd

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/kasflow/backend/internal/config"
	"github.com/kasflow/backend/internal/database"
	"github.com/spf13/cobra"
)

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "finctl",
	Short: "Operate the personal finance ledger",
	Long: `finctl runs maintenance jobs against the ledger database.

Example:
  finctl migrate
  finctl recurring run
  finctl recurring run --date 2025-01-31
  finctl accounts reconcile --owner 42`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})))

		config.Init(envFile)
		slog.Debug("configuration loaded", "env_file", envFile)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recurringCmd)
	rootCmd.AddCommand(accountsCmd)
}

func openDB(ctx context.Context) (*sql.DB, error) {
	cfg := database.GetConfig()
	slog.Debug("opening database", "host", cfg.Host, "name", cfg.Name)
	return database.Open(ctx, cfg)
}
