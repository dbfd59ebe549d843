package sqlgen

import (
	"strconv"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
)

func (w *writer) writeTableRef(t ast.TableRef) {
	w.write(w.d.QuoteIdent(t.Name))
	if t.Alias != "" {
		w.write(" AS ")
		w.write(w.d.QuoteIdent(t.Alias))
	}
}

func (w *writer) writeSelect(s *ast.SelectStmt) error {
	w.write("SELECT ")
	if s.Distinct {
		w.write("DISTINCT ")
	}
	if w.d.Pagination == dialect.PaginationTopSelect && s.Limit != nil {
		w.write("TOP ")
		w.write(strconv.Itoa(*s.Limit))
		w.write(" ")
	}
	if len(s.Columns) == 0 {
		w.write("*")
	} else {
		for i, item := range s.Columns {
			if i > 0 {
				w.write(", ")
			}
			if err := w.writeExpr(item.Expr); err != nil {
				return err
			}
			if item.Alias != "" {
				w.write(" AS ")
				w.write(w.d.QuoteIdent(item.Alias))
			}
		}
	}
	w.write(" FROM ")
	w.writeTableRef(s.From)
	for _, j := range s.Joins {
		w.write(" ")
		w.write(string(j.Kind))
		w.write(" JOIN ")
		w.writeTableRef(j.Table)
		w.write(" ON ")
		if err := w.writeExpr(j.On); err != nil {
			return err
		}
	}
	if s.Where != nil {
		w.write(" WHERE ")
		if err := w.writeExpr(s.Where); err != nil {
			return err
		}
	}
	if len(s.GroupBy) > 0 {
		w.write(" GROUP BY ")
		for i, g := range s.GroupBy {
			if i > 0 {
				w.write(", ")
			}
			if err := w.writeExpr(g); err != nil {
				return err
			}
		}
	}
	if s.Having != nil {
		w.write(" HAVING ")
		if err := w.writeExpr(s.Having); err != nil {
			return err
		}
	}
	if len(s.OrderBy) > 0 {
		w.write(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				w.write(", ")
			}
			if err := w.writeExpr(o.Expr); err != nil {
				return err
			}
			if o.Dir != "" {
				w.write(" ")
				w.write(string(o.Dir))
			}
		}
	}
	return w.writePagination(s)
}

// writePagination renders the trailing row-cap clause. Limits and offsets
// are validated non-negative integers and render inline, so they never
// disturb the positional parameter order.
func (w *writer) writePagination(s *ast.SelectStmt) error {
	switch w.d.Pagination {
	case dialect.PaginationTopSelect:
		// The cap was already rendered as TOP in the select clause.
		if s.Offset != nil && *s.Offset > 0 {
			return &UnsupportedOperationError{Dialect: w.d.Name, Operation: "OFFSET"}
		}
	case dialect.PaginationOffsetFetch:
		if s.Limit == nil && s.Offset == nil {
			return nil
		}
		offset := 0
		if s.Offset != nil {
			offset = *s.Offset
		}
		w.write(" OFFSET ")
		w.write(strconv.Itoa(offset))
		w.write(" ROWS")
		if s.Limit != nil {
			w.write(" FETCH NEXT ")
			w.write(strconv.Itoa(*s.Limit))
			w.write(" ROWS ONLY")
		}
	default:
		if s.Limit != nil {
			w.write(" LIMIT ")
			w.write(strconv.Itoa(*s.Limit))
		}
		if s.Offset != nil && *s.Offset > 0 {
			if s.Limit == nil {
				// LIMIT-less offsets are not portable across engines that
				// use this style; require the caller to cap the result.
				return &UnsupportedOperationError{Dialect: w.d.Name, Operation: "OFFSET without LIMIT"}
			}
			w.write(" OFFSET ")
			w.write(strconv.Itoa(*s.Offset))
		}
	}
	return nil
}

func (w *writer) writeInsert(s *ast.InsertStmt) error {
	w.write("INSERT INTO ")
	w.writeTableRef(s.Table)
	w.write(" (")
	for i, col := range s.Columns {
		if i > 0 {
			w.write(", ")
		}
		w.write(w.d.QuoteIdent(col))
	}
	w.write(") VALUES ")
	for i, row := range s.Rows {
		if i > 0 {
			w.write(", ")
		}
		w.write("(")
		for j, v := range row {
			if j > 0 {
				w.write(", ")
			}
			if err := w.writeExpr(v); err != nil {
				return err
			}
		}
		w.write(")")
	}
	return nil
}

func (w *writer) writeUpdate(s *ast.UpdateStmt) error {
	w.write("UPDATE ")
	w.writeTableRef(s.Table)
	w.write(" SET ")
	for i, a := range s.Assignments {
		if i > 0 {
			w.write(", ")
		}
		w.write(w.d.QuoteIdent(a.Column))
		w.write(" = ")
		if err := w.writeExpr(a.Value); err != nil {
			return err
		}
	}
	if s.Where != nil {
		w.write(" WHERE ")
		if err := w.writeExpr(s.Where); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeDelete(s *ast.DeleteStmt) error {
	w.write("DELETE FROM ")
	w.writeTableRef(s.Table)
	if s.Where != nil {
		w.write(" WHERE ")
		if err := w.writeExpr(s.Where); err != nil {
			return err
		}
	}
	return nil
}
