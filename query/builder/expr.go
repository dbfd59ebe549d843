// Package builder provides a fluent, immutable query builder API.
//
// Builders use value semantics: every call returns a new builder and never
// mutates its receiver, so a partially built query can be shared and
// branched safely. Construction errors stick to the value they occurred on
// and surface from Build, so call chains stay unconditional.
package builder

import (
	"strings"

	"github.com/sqlbridge/sqlbridge/query/ast"
)

// E is an expression under construction. The zero value is invalid; start
// from Col, Lit, Param, Func or Query.
type E struct {
	node ast.Expr
	err  error
}

// Col references a column. A "table.column" name is split on the first dot
// into a qualified reference.
func Col(name string) E {
	table, col := "", name
	if t, c, ok := strings.Cut(name, "."); ok {
		table, col = t, c
	}
	node, err := ast.NewColumn(table, col)
	return E{node: node, err: err}
}

// Lit wraps a Go value as a literal. Supported values are nil, booleans,
// integers, floats, strings, byte slices and time.Time.
func Lit(value any) E {
	node, err := ast.NewLiteral(value)
	return E{node: node, err: err}
}

// Param is a deferred placeholder: the value is supplied at execution time.
// Indexes are 1-based.
func Param(index int) E {
	node, err := ast.NewParam(index)
	return E{node: node, err: err}
}

// Func calls a logical function by name. Known names are arity-checked.
func Func(name string, args ...E) E {
	nodes := make([]ast.Expr, len(args))
	for i, a := range args {
		if a.err != nil {
			return E{err: a.err}
		}
		nodes[i] = a.node
	}
	node, err := ast.NewFunc(name, nodes...)
	return E{node: node, err: err}
}

// Query embeds a single-column SELECT as a scalar subquery.
func Query(sb SelectBuilder) E {
	stmt, err := sb.Build()
	if err != nil {
		return E{err: err}
	}
	node, err := ast.NewSubquery(stmt)
	return E{node: node, err: err}
}

// Expr returns the built expression, or the first error hit while
// constructing it.
func (e E) Expr() (ast.Expr, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.node, nil
}

func (e E) binary(op ast.BinaryOp, other E) E {
	if e.err != nil {
		return e
	}
	if other.err != nil {
		return other
	}
	node, err := ast.NewBinary(op, e.node, other.node)
	return E{node: node, err: err}
}

func (e E) unary(op ast.UnaryOp) E {
	if e.err != nil {
		return e
	}
	node, err := ast.NewUnary(op, e.node)
	return E{node: node, err: err}
}

// Eq compares for equality.
func (e E) Eq(other E) E { return e.binary(ast.OpEq, other) }

// Ne compares for inequality.
func (e E) Ne(other E) E { return e.binary(ast.OpNe, other) }

// Lt compares with <.
func (e E) Lt(other E) E { return e.binary(ast.OpLt, other) }

// Le compares with <=.
func (e E) Le(other E) E { return e.binary(ast.OpLe, other) }

// Gt compares with >.
func (e E) Gt(other E) E { return e.binary(ast.OpGt, other) }

// Ge compares with >=.
func (e E) Ge(other E) E { return e.binary(ast.OpGe, other) }

// Like matches against a pattern.
func (e E) Like(pattern E) E { return e.binary(ast.OpLike, pattern) }

// And combines two boolean expressions.
func (e E) And(other E) E { return e.binary(ast.OpAnd, other) }

// Or combines two boolean expressions.
func (e E) Or(other E) E { return e.binary(ast.OpOr, other) }

// Add adds two numeric expressions.
func (e E) Add(other E) E { return e.binary(ast.OpAdd, other) }

// Sub subtracts a numeric expression.
func (e E) Sub(other E) E { return e.binary(ast.OpSub, other) }

// Mul multiplies two numeric expressions.
func (e E) Mul(other E) E { return e.binary(ast.OpMul, other) }

// Div divides by a numeric expression.
func (e E) Div(other E) E { return e.binary(ast.OpDiv, other) }

// Concat concatenates two text expressions.
func (e E) Concat(other E) E { return e.binary(ast.OpConcat, other) }

// In tests membership in a list of values.
func (e E) In(items ...E) E {
	if e.err != nil {
		return e
	}
	nodes := make([]ast.Expr, len(items))
	for i, item := range items {
		if item.err != nil {
			return E{err: item.err}
		}
		nodes[i] = item.node
	}
	list, err := ast.NewList(nodes...)
	if err != nil {
		return E{err: err}
	}
	node, err := ast.NewBinary(ast.OpIn, e.node, list)
	return E{node: node, err: err}
}

// InQuery tests membership in a single-column subquery.
func (e E) InQuery(sb SelectBuilder) E {
	return e.binary(ast.OpIn, Query(sb))
}

// Not negates a boolean expression.
func (e E) Not() E { return e.unary(ast.OpNot) }

// Neg negates a numeric expression.
func (e E) Neg() E { return e.unary(ast.OpNeg) }

// IsNull tests for NULL.
func (e E) IsNull() E { return e.unary(ast.OpIsNull) }

// IsNotNull tests for non-NULL.
func (e E) IsNotNull() E { return e.unary(ast.OpIsNotNull) }
