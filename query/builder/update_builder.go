package builder

import (
	"slices"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// UpdateBuilder assembles an UPDATE statement.
type UpdateBuilder struct {
	stmt ast.UpdateStmt
	err  error
}

// Update starts an UPDATE for the named table.
func Update(table string) UpdateBuilder {
	return UpdateBuilder{stmt: ast.UpdateStmt{Table: ast.TableRef{Name: table}}}
}

func (ub UpdateBuilder) fail(err error) UpdateBuilder {
	if ub.err == nil {
		ub.err = err
	}
	return ub
}

// Set assigns an expression to a column. Assignments render in call order.
func (ub UpdateBuilder) Set(column string, value E) UpdateBuilder {
	if ub.err != nil {
		return ub
	}
	if value.err != nil {
		return ub.fail(value.err)
	}
	assignments := slices.Clone(ub.stmt.Assignments)
	ub.stmt.Assignments = append(assignments, ast.Assignment{Column: column, Value: value.node})
	return ub
}

// SetValue assigns a Go value to a column, converted to a literal.
func (ub UpdateBuilder) SetValue(column string, value any) UpdateBuilder {
	return ub.Set(column, Lit(value))
}

// Where filters the rows to update. Repeated calls AND the conditions
// together.
func (ub UpdateBuilder) Where(cond E) UpdateBuilder {
	if ub.err != nil {
		return ub
	}
	if cond.err != nil {
		return ub.fail(cond.err)
	}
	if ub.stmt.Where == nil {
		ub.stmt.Where = cond.node
		return ub
	}
	combined, err := ast.NewBinary(ast.OpAnd, ub.stmt.Where, cond.node)
	if err != nil {
		return ub.fail(err)
	}
	ub.stmt.Where = combined
	return ub
}

// Build validates and returns the statement, or the first error hit while
// building it.
func (ub UpdateBuilder) Build() (*ast.UpdateStmt, error) {
	if ub.err != nil {
		return nil, ub.err
	}
	stmt := ub.stmt
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return &stmt, nil
}

// Render builds the statement and renders it under the given dialect.
func (ub UpdateBuilder) Render(d *dialect.Dialect) (*sqlgen.Query, error) {
	stmt, err := ub.Build()
	if err != nil {
		return nil, err
	}
	return sqlgen.Render(stmt, d)
}
