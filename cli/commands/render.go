package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/builder"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

func newRenderCommand() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render demonstration queries under one or all dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(dialectName)
		},
	}
	cmd.Flags().StringVar(&dialectName, "dialect", "", "dialect to render for (default: all)")
	return cmd
}

// demoStatements builds a small set of statements that touch quoting,
// parameterization, joins, pagination and function mapping.
func demoStatements() (map[string]ast.Stmt, []string, error) {
	find, err := builder.
		SelectCols("u.id", "u.email", "u.created_at").
		FromAs("users", "u").
		InnerJoin("orders", builder.Col("orders.user_id").Eq(builder.Col("u.id"))).
		Where(builder.Col("u.active").Eq(builder.Lit(true)).
			And(builder.Col("orders.total").Gt(builder.Lit(100.0)))).
		OrderByDesc(builder.Col("u.created_at")).
		Limit(10).
		Build()
	if err != nil {
		return nil, nil, err
	}

	report, err := builder.
		Select(builder.Func("COUNT", builder.Col("id"))).
		ColumnAs(builder.Func("UPPER", builder.Col("country")), "country").
		From("users").
		GroupBy(builder.Col("country")).
		Having(builder.Func("COUNT", builder.Col("id")).Gt(builder.Lit(int64(5)))).
		Build()
	if err != nil {
		return nil, nil, err
	}

	create, err := builder.
		InsertInto("users").
		Columns("email", "name", "active").
		Values("ada@example.com", "Ada", true).
		Build()
	if err != nil {
		return nil, nil, err
	}

	retire, err := builder.
		Update("users").
		SetValue("active", false).
		Where(builder.Col("last_login").Lt(builder.Param(1))).
		Build()
	if err != nil {
		return nil, nil, err
	}

	stmts := map[string]ast.Stmt{
		"find active customers": find,
		"orders per country":    report,
		"create user":           create,
		"retire stale accounts": retire,
	}
	order := []string{"find active customers", "orders per country", "create user", "retire stale accounts"}
	return stmts, order, nil
}

func runRender(dialectName string) error {
	names := dialect.Names()
	if dialectName != "" {
		names = []string{dialectName}
	}

	stmts, order, err := demoStatements()
	if err != nil {
		return err
	}

	ui.PrintHeader("sqlbridge", "one statement tree, rendered per dialect")
	for _, name := range names {
		d, err := dialect.Get(name)
		if err != nil {
			return err
		}
		ui.PrintSection(d.Name)
		for _, label := range order {
			q, err := sqlgen.Render(stmts[label], d)
			if err != nil {
				ui.PrintWarning("%s: %v", label, err)
				continue
			}
			ui.PrintInfo("%s", label)
			ui.PrintSQL(q.SQL, q.Args)
		}
	}
	return nil
}
