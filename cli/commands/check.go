package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/query/executor"
)

func newCheckCommand() *cobra.Command {
	var dialectName string
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify database connectivity for the configured dialect",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if dialectName == "" {
				dialectName = cfg.Dialect
			}
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			return runCheck(dialectName, databaseURL)
		},
	}
	cmd.Flags().StringVar(&dialectName, "dialect", "", "dialect to connect with")
	cmd.Flags().StringVar(&databaseURL, "url", "", "database connection string")
	return cmd
}

func runCheck(dialectName, databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("no database URL configured; set DATABASE_URL or pass --url")
	}

	driver, err := executor.DriverName(dialectName)
	if err != nil {
		return err
	}
	ui.PrintInfo("dialect %s uses driver %s", dialectName, driver)

	exec, err := executor.Open(dialectName, databaseURL)
	if err != nil {
		return err
	}
	defer exec.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := exec.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	ui.PrintSuccess("connected to %s database", dialectName)
	return nil
}
