// Package commands implements the sqlbridge CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/config"
	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/internal/debug"
)

var debugFlag bool

// Execute runs the CLI.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "sqlbridge",
		Short:         "Build and render SQL for multiple dialects",
		Long:          "sqlbridge builds SQL statements as data and renders them for PostgreSQL, MySQL, SQLite, SQL Server and ANSI SQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(debugFlag)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newDialectsCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintWarning("could not load configuration: %v", err)
		return &config.Config{Dialect: "ansi"}
	}
	if debug.Enabled() {
		debug.Debug("configuration loaded", "dialect", cfg.Dialect, "url_set", cfg.DatabaseURL != "")
	}
	return cfg
}
