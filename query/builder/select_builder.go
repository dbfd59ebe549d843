package builder

import (
	"slices"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// SelectBuilder assembles a SELECT statement. The zero value selects every
// column; chain From before Build.
type SelectBuilder struct {
	stmt ast.SelectStmt
	err  error
}

// Select starts a SELECT with the given projected expressions. With no
// arguments the statement projects every column.
func Select(columns ...E) SelectBuilder {
	var sb SelectBuilder
	return sb.Columns(columns...)
}

// SelectCols starts a SELECT projecting the named columns.
func SelectCols(names ...string) SelectBuilder {
	columns := make([]E, len(names))
	for i, name := range names {
		columns[i] = Col(name)
	}
	return Select(columns...)
}

func (sb SelectBuilder) fail(err error) SelectBuilder {
	if sb.err == nil {
		sb.err = err
	}
	return sb
}

// Columns appends projected expressions.
func (sb SelectBuilder) Columns(columns ...E) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	items := slices.Clone(sb.stmt.Columns)
	for _, c := range columns {
		if c.err != nil {
			return sb.fail(c.err)
		}
		items = append(items, ast.SelectItem{Expr: c.node})
	}
	sb.stmt.Columns = items
	return sb
}

// ColumnAs appends one projected expression under an alias.
func (sb SelectBuilder) ColumnAs(column E, alias string) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	if column.err != nil {
		return sb.fail(column.err)
	}
	items := slices.Clone(sb.stmt.Columns)
	sb.stmt.Columns = append(items, ast.SelectItem{Expr: column.node, Alias: alias})
	return sb
}

// Distinct deduplicates the result rows.
func (sb SelectBuilder) Distinct() SelectBuilder {
	sb.stmt.Distinct = true
	return sb
}

// From names the table to select from.
func (sb SelectBuilder) From(table string) SelectBuilder {
	sb.stmt.From = ast.TableRef{Name: table}
	return sb
}

// FromAs names the table and gives it an alias.
func (sb SelectBuilder) FromAs(table, alias string) SelectBuilder {
	sb.stmt.From = ast.TableRef{Name: table, Alias: alias}
	return sb
}

func (sb SelectBuilder) join(kind ast.JoinKind, table ast.TableRef, on E) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	if on.err != nil {
		return sb.fail(on.err)
	}
	joins := slices.Clone(sb.stmt.Joins)
	sb.stmt.Joins = append(joins, ast.Join{Kind: kind, Table: table, On: on.node})
	return sb
}

// Join appends a join of the given kind.
func (sb SelectBuilder) Join(kind ast.JoinKind, table string, on E) SelectBuilder {
	return sb.join(kind, ast.TableRef{Name: table}, on)
}

// JoinAs appends a join of the given kind under a table alias.
func (sb SelectBuilder) JoinAs(kind ast.JoinKind, table, alias string, on E) SelectBuilder {
	return sb.join(kind, ast.TableRef{Name: table, Alias: alias}, on)
}

// InnerJoin appends an INNER JOIN.
func (sb SelectBuilder) InnerJoin(table string, on E) SelectBuilder {
	return sb.Join(ast.JoinInner, table, on)
}

// LeftJoin appends a LEFT JOIN.
func (sb SelectBuilder) LeftJoin(table string, on E) SelectBuilder {
	return sb.Join(ast.JoinLeft, table, on)
}

// Where filters the result. Repeated calls AND the conditions together.
func (sb SelectBuilder) Where(cond E) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	if cond.err != nil {
		return sb.fail(cond.err)
	}
	if sb.stmt.Where == nil {
		sb.stmt.Where = cond.node
		return sb
	}
	combined, err := ast.NewBinary(ast.OpAnd, sb.stmt.Where, cond.node)
	if err != nil {
		return sb.fail(err)
	}
	sb.stmt.Where = combined
	return sb
}

// GroupBy appends grouping expressions.
func (sb SelectBuilder) GroupBy(exprs ...E) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	groups := slices.Clone(sb.stmt.GroupBy)
	for _, g := range exprs {
		if g.err != nil {
			return sb.fail(g.err)
		}
		groups = append(groups, g.node)
	}
	sb.stmt.GroupBy = groups
	return sb
}

// Having filters grouped rows. Repeated calls AND the conditions together.
func (sb SelectBuilder) Having(cond E) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	if cond.err != nil {
		return sb.fail(cond.err)
	}
	if sb.stmt.Having == nil {
		sb.stmt.Having = cond.node
		return sb
	}
	combined, err := ast.NewBinary(ast.OpAnd, sb.stmt.Having, cond.node)
	if err != nil {
		return sb.fail(err)
	}
	sb.stmt.Having = combined
	return sb
}

func (sb SelectBuilder) orderBy(e E, dir ast.SortDirection) SelectBuilder {
	if sb.err != nil {
		return sb
	}
	if e.err != nil {
		return sb.fail(e.err)
	}
	items := slices.Clone(sb.stmt.OrderBy)
	sb.stmt.OrderBy = append(items, ast.OrderItem{Expr: e.node, Dir: dir})
	return sb
}

// OrderBy appends an ascending sort key.
func (sb SelectBuilder) OrderBy(e E) SelectBuilder {
	return sb.orderBy(e, ast.SortAsc)
}

// OrderByDesc appends a descending sort key.
func (sb SelectBuilder) OrderByDesc(e E) SelectBuilder {
	return sb.orderBy(e, ast.SortDesc)
}

// Limit caps the number of result rows.
func (sb SelectBuilder) Limit(n int) SelectBuilder {
	sb.stmt.Limit = &n
	return sb
}

// Offset skips rows before the first result row.
func (sb SelectBuilder) Offset(n int) SelectBuilder {
	sb.stmt.Offset = &n
	return sb
}

// Build validates and returns the statement, or the first error hit while
// building it.
func (sb SelectBuilder) Build() (*ast.SelectStmt, error) {
	if sb.err != nil {
		return nil, sb.err
	}
	stmt := sb.stmt
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return &stmt, nil
}

// Render builds the statement and renders it under the given dialect.
func (sb SelectBuilder) Render(d *dialect.Dialect) (*sqlgen.Query, error) {
	stmt, err := sb.Build()
	if err != nil {
		return nil, err
	}
	return sqlgen.Render(stmt, d)
}
