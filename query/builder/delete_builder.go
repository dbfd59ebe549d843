package builder

import (
	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// DeleteBuilder assembles a DELETE statement.
type DeleteBuilder struct {
	stmt ast.DeleteStmt
	err  error
}

// DeleteFrom starts a DELETE for the named table.
func DeleteFrom(table string) DeleteBuilder {
	return DeleteBuilder{stmt: ast.DeleteStmt{Table: ast.TableRef{Name: table}}}
}

func (db DeleteBuilder) fail(err error) DeleteBuilder {
	if db.err == nil {
		db.err = err
	}
	return db
}

// Where filters the rows to delete. Repeated calls AND the conditions
// together.
func (db DeleteBuilder) Where(cond E) DeleteBuilder {
	if db.err != nil {
		return db
	}
	if cond.err != nil {
		return db.fail(cond.err)
	}
	if db.stmt.Where == nil {
		db.stmt.Where = cond.node
		return db
	}
	combined, err := ast.NewBinary(ast.OpAnd, db.stmt.Where, cond.node)
	if err != nil {
		return db.fail(err)
	}
	db.stmt.Where = combined
	return db
}

// Build validates and returns the statement, or the first error hit while
// building it.
func (db DeleteBuilder) Build() (*ast.DeleteStmt, error) {
	if db.err != nil {
		return nil, db.err
	}
	stmt := db.stmt
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return &stmt, nil
}

// Render builds the statement and renders it under the given dialect.
func (db DeleteBuilder) Render(d *dialect.Dialect) (*sqlgen.Query, error) {
	stmt, err := db.Build()
	if err != nil {
		return nil, err
	}
	return sqlgen.Render(stmt, d)
}
