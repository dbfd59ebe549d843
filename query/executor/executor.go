// Package executor runs built statements against database/sql connections.
//
// It is a thin bridge: statements are rendered by sqlgen for the
// executor's dialect, deferred placeholders are bound to call-time values,
// and the resulting SQL goes to the driver with positional arguments.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/sqlbridge/sqlbridge/internal/debug"
	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

// DriverName maps a dialect name to the database/sql driver name that
// speaks its wire protocol. The caller is responsible for importing the
// driver package.
func DriverName(dialectName string) (string, error) {
	d, err := dialect.Get(dialectName)
	if err != nil {
		return "", err
	}
	switch d.Name {
	case "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no driver registered for dialect %s", d.Name)
	}
}

// Executor renders and executes statements against one database handle.
// It caches prepared statements by SQL text.
type Executor struct {
	db        *sql.DB
	renderer  *sqlgen.Renderer
	stmtCache map[string]*sql.Stmt
	cacheMu   sync.RWMutex
}

// New creates an executor for an already opened database handle.
func New(db *sql.DB, dialectName string) (*Executor, error) {
	r, err := sqlgen.NewRenderer(dialectName)
	if err != nil {
		return nil, err
	}
	return &Executor{
		db:        db,
		renderer:  r,
		stmtCache: make(map[string]*sql.Stmt),
	}, nil
}

// Open opens a database for the named dialect and wraps it in an executor.
func Open(dialectName, dsn string) (*Executor, error) {
	driver, err := DriverName(dialectName)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialectName, err)
	}
	debug.Info("opened database", "dialect", dialectName, "driver", driver)
	return New(db, dialectName)
}

// DB returns the underlying database handle.
func (e *Executor) DB() *sql.DB {
	return e.db
}

// Dialect returns the dialect statements are rendered under.
func (e *Executor) Dialect() *dialect.Dialect {
	return e.renderer.Dialect()
}

// Close releases cached prepared statements and closes the database.
func (e *Executor) Close() error {
	e.ClearStmtCache()
	return e.db.Close()
}

func (e *Executor) getCachedStmt(ctx context.Context, query string) (*sql.Stmt, error) {
	e.cacheMu.RLock()
	stmt, ok := e.stmtCache[query]
	e.cacheMu.RUnlock()
	if ok {
		return stmt, nil
	}

	stmt, err := e.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	e.cacheMu.Lock()
	e.stmtCache[query] = stmt
	e.cacheMu.Unlock()
	return stmt, nil
}

// ClearStmtCache closes and drops every cached prepared statement.
func (e *Executor) ClearStmtCache() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	for _, stmt := range e.stmtCache {
		if err := stmt.Close(); err != nil {
			debug.Warn("failed to close cached statement", "error", err)
		}
	}
	e.stmtCache = make(map[string]*sql.Stmt)
}

// bindArgs resolves sqlgen.BoundParam entries in a rendered argument list
// against the call-time parameter values. Params are 1-based.
func bindArgs(rendered []any, params []any) ([]any, error) {
	bound := make([]any, len(rendered))
	for i, arg := range rendered {
		if p, ok := arg.(sqlgen.BoundParam); ok {
			if p.Index < 1 || p.Index > len(params) {
				return nil, fmt.Errorf("statement references parameter %d, but %d value(s) were supplied",
					p.Index, len(params))
			}
			bound[i] = params[p.Index-1]
			continue
		}
		bound[i] = arg
	}
	return bound, nil
}

func (e *Executor) render(stmt ast.Stmt, params []any) (string, []any, error) {
	q, err := e.renderer.Render(stmt)
	if err != nil {
		return "", nil, err
	}
	args, err := bindArgs(q.Args, params)
	if err != nil {
		return "", nil, err
	}
	debug.Query(q.SQL, len(args), e.renderer.Dialect().Name)
	return q.SQL, args, nil
}

// Query renders a statement and executes it, returning the result rows.
// params supplies values for deferred placeholders, in placeholder order.
func (e *Executor) Query(ctx context.Context, stmt ast.Stmt, params ...any) (*sql.Rows, error) {
	sqlText, args, err := e.render(stmt, params)
	if err != nil {
		return nil, err
	}
	prepared, err := e.getCachedStmt(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	return rows, nil
}

// QueryRow renders a statement and executes it, returning at most one row.
func (e *Executor) QueryRow(ctx context.Context, stmt ast.Stmt, params ...any) (*sql.Row, error) {
	sqlText, args, err := e.render(stmt, params)
	if err != nil {
		return nil, err
	}
	prepared, err := e.getCachedStmt(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	return prepared.QueryRowContext(ctx, args...), nil
}

// Exec renders a statement and executes it without returning rows.
func (e *Executor) Exec(ctx context.Context, stmt ast.Stmt, params ...any) (sql.Result, error) {
	sqlText, args, err := e.render(stmt, params)
	if err != nil {
		return nil, err
	}
	prepared, err := e.getCachedStmt(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	res, err := prepared.ExecContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("statement execution failed: %w", err)
	}
	return res, nil
}
