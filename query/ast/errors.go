package ast

import "fmt"

// MalformedQueryError reports a structural violation detected while a
// statement or expression was being constructed: duplicate names, arity
// mismatches, empty table names, unresolved column references, and the like.
// No partially valid node is ever returned alongside it.
type MalformedQueryError struct {
	Stmt   string // statement shape, e.g. "SELECT", "INSERT"
	Detail string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed %s query: %s", e.Stmt, e.Detail)
}

func malformed(stmt, format string, args ...any) error {
	return &MalformedQueryError{Stmt: stmt, Detail: fmt.Sprintf(format, args...)}
}

// TypeMismatchError reports an inferred-type conflict detected at build
// time, such as a non-boolean operand to AND or an operator with no meaning
// for the given operand pair.
type TypeMismatchError struct {
	Op   string
	Want DataType
	Got  DataType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: operator %s wants %s operand, got %s", e.Op, e.Want, e.Got)
}
