// Package sqlgen renders statement ASTs into dialect-specific SQL.
//
// Rendering is a pure function of (statement, dialect): identical input
// yields byte-identical output, and no state survives between calls. Values
// never appear in the SQL text; every literal becomes a placeholder token
// plus an entry in the ordered argument list, in left-to-right tree order —
// the order a driver binds positional parameters in.
package sqlgen

import (
	"fmt"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
)

// Query is a rendered statement: SQL text plus the ordered parameter list.
type Query struct {
	SQL  string
	Args []any
}

// BoundParam stands in the argument list for an ast.Param hole: a value the
// caller binds at execution time rather than at build time. Index is the
// placeholder's own 1-based number from the AST, independent of the
// position the entry occupies in Args.
type BoundParam struct {
	Index int
}

// UnsupportedOperationError reports a logical function or operator with no
// mapping in the chosen dialect. It is a render-time failure: portability
// is only guaranteed across dialects that declare support.
type UnsupportedOperationError struct {
	Dialect   string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("dialect %s does not support %s", e.Dialect, e.Operation)
}

// Renderer binds a dialect descriptor once so call sites can swap backends
// by constructing a different Renderer. The descriptor is resolved here, so
// an unknown name fails at construction, not at first render.
type Renderer struct {
	d *dialect.Dialect
}

// NewRenderer resolves the named dialect from the registry.
func NewRenderer(name string) (*Renderer, error) {
	d, err := dialect.Get(name)
	if err != nil {
		return nil, err
	}
	return &Renderer{d: d}, nil
}

// NewRendererFor wraps an explicit descriptor, typically one the caller
// registered itself.
func NewRendererFor(d *dialect.Dialect) *Renderer {
	return &Renderer{d: d}
}

// Dialect returns the descriptor the renderer was constructed with.
func (r *Renderer) Dialect() *dialect.Dialect {
	return r.d
}

// Render renders a statement under the renderer's dialect.
func (r *Renderer) Render(stmt ast.Stmt) (*Query, error) {
	return Render(stmt, r.d)
}

// Render walks the statement AST and produces SQL text plus the ordered
// parameter list for the given dialect. Render-time failures abort the
// whole call; no partial SQL is ever returned.
func Render(stmt ast.Stmt, d *dialect.Dialect) (*Query, error) {
	if d == nil {
		return nil, &dialect.UnsupportedDialectError{Name: ""}
	}
	w := newWriter(d)
	var err error
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		if err = s.Validate(); err == nil {
			err = w.writeSelect(s)
		}
	case *ast.InsertStmt:
		if err = s.Validate(); err == nil {
			err = w.writeInsert(s)
		}
	case *ast.UpdateStmt:
		if err = s.Validate(); err == nil {
			err = w.writeUpdate(s)
		}
	case *ast.DeleteStmt:
		if err = s.Validate(); err == nil {
			err = w.writeDelete(s)
		}
	default:
		err = fmt.Errorf("unknown statement type %T", stmt)
	}
	if err != nil {
		return nil, err
	}
	return &Query{SQL: w.sb.String(), Args: w.args}, nil
}
