package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/query/dialect"
)

func newDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects and their capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects()
		},
	}
}

func runDialects() error {
	rows := [][]string{}
	for _, name := range dialect.Names() {
		d, err := dialect.Get(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			d.Name,
			fmt.Sprintf("%s…%s", d.QuoteOpen, d.QuoteClose),
			d.PlaceholderToken(1),
			string(d.Pagination),
			fmt.Sprintf("%s / %s", d.TrueLiteral, d.FalseLiteral),
		})
	}
	ui.PrintTable([]string{"Dialect", "Quotes", "Placeholder", "Pagination", "Booleans"}, rows)
	return nil
}
