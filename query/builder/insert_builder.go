package builder

import (
	"slices"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// InsertBuilder assembles a multi-row INSERT statement.
type InsertBuilder struct {
	stmt ast.InsertStmt
	err  error
}

// InsertInto starts an INSERT for the named table.
func InsertInto(table string) InsertBuilder {
	return InsertBuilder{stmt: ast.InsertStmt{Table: ast.TableRef{Name: table}}}
}

func (ib InsertBuilder) fail(err error) InsertBuilder {
	if ib.err == nil {
		ib.err = err
	}
	return ib
}

// Columns names the columns each row supplies values for.
func (ib InsertBuilder) Columns(names ...string) InsertBuilder {
	ib.stmt.Columns = slices.Clone(names)
	return ib
}

// Values appends one row of Go values, converted to literals.
func (ib InsertBuilder) Values(values ...any) InsertBuilder {
	exprs := make([]E, len(values))
	for i, v := range values {
		exprs[i] = Lit(v)
	}
	return ib.ValuesExpr(exprs...)
}

// ValuesExpr appends one row of expressions.
func (ib InsertBuilder) ValuesExpr(values ...E) InsertBuilder {
	if ib.err != nil {
		return ib
	}
	row := make([]ast.Expr, len(values))
	for i, v := range values {
		if v.err != nil {
			return ib.fail(v.err)
		}
		row[i] = v.node
	}
	rows := slices.Clone(ib.stmt.Rows)
	ib.stmt.Rows = append(rows, row)
	return ib
}

// Build validates and returns the statement, or the first error hit while
// building it.
func (ib InsertBuilder) Build() (*ast.InsertStmt, error) {
	if ib.err != nil {
		return nil, ib.err
	}
	stmt := ib.stmt
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return &stmt, nil
}

// Render builds the statement and renders it under the given dialect.
func (ib InsertBuilder) Render(d *dialect.Dialect) (*sqlgen.Query, error) {
	stmt, err := ib.Build()
	if err != nil {
		return nil, err
	}
	return sqlgen.Render(stmt, d)
}
