package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/cli/internal/update"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("sqlbridge version %s\n", Version)
			fmt.Printf("  Git Commit: %s\n", GitCommit)
			fmt.Printf("  Go Version: %s\n", runtime.Version())
			fmt.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

			newer, latest, err := update.Check(Version)
			if err != nil {
				return err
			}
			if newer {
				ui.PrintWarning("a newer version is available: %s", latest)
				fmt.Printf("  download: %s\n", update.DownloadURL(latest))
			}
			return nil
		},
	}
}
