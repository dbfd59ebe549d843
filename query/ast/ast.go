// Package ast defines the dialect-neutral query AST (Abstract Syntax Tree).
//
// Expressions and statements are plain immutable data: they are built once
// (normally through package builder), validated at construction, and walked
// read-only by the renderer. Nothing in this package touches a database.
package ast

// Expr is a value-level node: a literal, column reference, operator
// application, function call, parameter placeholder, or scalar subquery.
// The set of implementations is closed; the renderer switches over it
// exhaustively.
type Expr interface {
	exprNode()
	// DataType reports the best-effort inferred semantic type of the
	// expression, computed structurally at construction time.
	DataType() DataType
}

// Stmt is a top-level statement node: SELECT, INSERT, UPDATE, or DELETE.
type Stmt interface {
	stmtNode()
}

// DataType is the inferred semantic type of an expression.
type DataType string

const (
	TypeUnknown  DataType = "unknown"
	TypeNull     DataType = "null"
	TypeBool     DataType = "bool"
	TypeNumeric  DataType = "numeric"
	TypeText     DataType = "text"
	TypeBytes    DataType = "bytes"
	TypeDatetime DataType = "datetime"
)

// BinaryOp identifies a two-operand logical operator. The value is the
// dialect-neutral name; dialects map it to their own token at render time.
type BinaryOp string

const (
	OpEq     BinaryOp = "="
	OpNe     BinaryOp = "<>"
	OpLt     BinaryOp = "<"
	OpLe     BinaryOp = "<="
	OpGt     BinaryOp = ">"
	OpGe     BinaryOp = ">="
	OpAnd    BinaryOp = "AND"
	OpOr     BinaryOp = "OR"
	OpAdd    BinaryOp = "+"
	OpSub    BinaryOp = "-"
	OpMul    BinaryOp = "*"
	OpDiv    BinaryOp = "/"
	OpLike   BinaryOp = "LIKE"
	OpIn     BinaryOp = "IN"
	OpConcat BinaryOp = "CONCAT"
)

// UnaryOp identifies a one-operand logical operator.
type UnaryOp string

const (
	OpNot       UnaryOp = "NOT"
	OpNeg       UnaryOp = "-"
	OpIsNull    UnaryOp = "IS NULL"
	OpIsNotNull UnaryOp = "IS NOT NULL"
)

// Operator precedence levels, higher binds tighter. These follow standard
// SQL precedence: arithmetic binds tighter than comparison, NOT tighter
// than AND, AND tighter than OR. The renderer parenthesizes a child exactly
// when it binds looser than its parent (or equally on the wrong side of a
// non-associative operator).
const (
	PrecOr             = 1
	PrecAnd            = 2
	PrecNot            = 3
	PrecComparison     = 4
	PrecAdditive       = 5
	PrecMultiplicative = 6
	PrecUnary          = 7
)

// Precedence reports the precedence level of a binary operator.
func (op BinaryOp) Precedence() int {
	switch op {
	case OpOr:
		return PrecOr
	case OpAnd:
		return PrecAnd
	case OpMul, OpDiv:
		return PrecMultiplicative
	case OpAdd, OpSub, OpConcat:
		return PrecAdditive
	default:
		return PrecComparison
	}
}

// Associative reports whether operand grouping is irrelevant for the
// operator. Non-associative operators need parentheses around an
// equal-precedence right child.
func (op BinaryOp) Associative() bool {
	switch op {
	case OpAnd, OpOr, OpAdd, OpMul, OpConcat:
		return true
	default:
		return false
	}
}

// Precedence reports the precedence level of a unary operator.
func (op UnaryOp) Precedence() int {
	switch op {
	case OpNot:
		return PrecNot
	case OpIsNull, OpIsNotNull:
		return PrecComparison
	default:
		return PrecUnary
	}
}

// JoinKind identifies the join flavor.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinFull  JoinKind = "FULL"
)

// SortDirection identifies an ORDER BY direction.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)
