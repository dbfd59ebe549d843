package executor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sqlbridge/sqlbridge/internal/debug"
	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// Tx renders and executes statements inside one transaction. Statements
// are prepared on the transaction, not cached: a *sql.Stmt is only valid
// for the transaction that prepared it.
type Tx struct {
	tx       *sql.Tx
	renderer *sqlgen.Renderer
}

// Begin starts a transaction.
func (e *Executor) Begin(ctx context.Context) (*Tx, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx, renderer: e.renderer}, nil
}

// Transact runs fn inside a transaction, committing when it returns nil
// and rolling back when it returns an error or panics.
func (e *Executor) Transact(ctx context.Context, fn func(*Tx) error) error {
	tx, err := e.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			debug.Error("rollback failed", "error", rbErr)
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) render(stmt ast.Stmt, params []any) (string, []any, error) {
	q, err := t.renderer.Render(stmt)
	if err != nil {
		return "", nil, err
	}
	args, err := bindArgs(q.Args, params)
	if err != nil {
		return "", nil, err
	}
	debug.Query(q.SQL, len(args), t.renderer.Dialect().Name)
	return q.SQL, args, nil
}

// Query renders a statement and executes it within the transaction.
func (t *Tx) Query(ctx context.Context, stmt ast.Stmt, params ...any) (*sql.Rows, error) {
	sqlText, args, err := t.render(stmt, params)
	if err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	return rows, nil
}

// QueryRow renders a statement and executes it within the transaction,
// returning at most one row.
func (t *Tx) QueryRow(ctx context.Context, stmt ast.Stmt, params ...any) (*sql.Row, error) {
	sqlText, args, err := t.render(stmt, params)
	if err != nil {
		return nil, err
	}
	return t.tx.QueryRowContext(ctx, sqlText, args...), nil
}

// Exec renders a statement and executes it within the transaction.
func (t *Tx) Exec(ctx context.Context, stmt ast.Stmt, params ...any) (sql.Result, error) {
	sqlText, args, err := t.render(stmt, params)
	if err != nil {
		return nil, err
	}
	res, err := t.tx.ExecContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("statement execution failed: %w", err)
	}
	return res, nil
}
