package commands

import (
	_ "embed"

	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
)

//go:embed docs.md
var dialectDocs string

func newDocsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show the dialect reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.PrintMarkdown(dialectDocs)
		},
	}
}
