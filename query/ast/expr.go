package ast

import "time"

// LiteralKind classifies a literal value. It drives dialect-specific
// rendering of the bound parameter (and the few literals that are emitted
// inline, such as NULL and booleans).
type LiteralKind string

const (
	KindNull     LiteralKind = "null"
	KindBool     LiteralKind = "boolean"
	KindInteger  LiteralKind = "integer"
	KindFloat    LiteralKind = "float"
	KindText     LiteralKind = "text"
	KindBytes    LiteralKind = "bytes"
	KindDate     LiteralKind = "date"
	KindDatetime LiteralKind = "datetime"
)

func (k LiteralKind) dataType() DataType {
	switch k {
	case KindNull:
		return TypeNull
	case KindBool:
		return TypeBool
	case KindInteger, KindFloat:
		return TypeNumeric
	case KindText:
		return TypeText
	case KindBytes:
		return TypeBytes
	case KindDate, KindDatetime:
		return TypeDatetime
	default:
		return TypeUnknown
	}
}

// Literal is a constant value. It never appears in rendered SQL text;
// the renderer emits a placeholder and appends the value to the parameter
// list. External values must only ever enter a query through Literal or
// Param, never through string concatenation.
type Literal struct {
	Value any
	Kind  LiteralKind
}

func (*Literal) exprNode()            {}
func (l *Literal) DataType() DataType { return l.Kind.dataType() }

// NewLiteral builds a literal, inferring its kind from the Go value.
func NewLiteral(value any) (*Literal, error) {
	switch v := value.(type) {
	case nil:
		return &Literal{Value: nil, Kind: KindNull}, nil
	case bool:
		return &Literal{Value: v, Kind: KindBool}, nil
	case int:
		return &Literal{Value: int64(v), Kind: KindInteger}, nil
	case int8:
		return &Literal{Value: int64(v), Kind: KindInteger}, nil
	case int16:
		return &Literal{Value: int64(v), Kind: KindInteger}, nil
	case int32:
		return &Literal{Value: int64(v), Kind: KindInteger}, nil
	case int64:
		return &Literal{Value: v, Kind: KindInteger}, nil
	case uint, uint8, uint16, uint32, uint64:
		return &Literal{Value: v, Kind: KindInteger}, nil
	case float32:
		return &Literal{Value: float64(v), Kind: KindFloat}, nil
	case float64:
		return &Literal{Value: v, Kind: KindFloat}, nil
	case string:
		return &Literal{Value: v, Kind: KindText}, nil
	case []byte:
		return &Literal{Value: v, Kind: KindBytes}, nil
	case time.Time:
		return &Literal{Value: v, Kind: KindDatetime}, nil
	default:
		return nil, malformed("literal", "unsupported literal type %T", value)
	}
}

// NewTypedLiteral builds a literal with an explicit kind, checking the Go
// value against it.
func NewTypedLiteral(value any, kind LiteralKind) (*Literal, error) {
	lit, err := NewLiteral(value)
	if err != nil {
		return nil, err
	}
	switch {
	case lit.Kind == kind:
		return lit, nil
	case kind == KindDate && lit.Kind == KindDatetime:
		lit.Kind = KindDate
		return lit, nil
	case kind == KindFloat && lit.Kind == KindInteger:
		lit.Kind = KindFloat
		return lit, nil
	default:
		return nil, malformed("literal", "value %v (%T) is not a valid %s literal", value, value, kind)
	}
}

// Column is a reference to a table or view column, optionally qualified
// with a table name or alias.
type Column struct {
	Table string // optional qualifier
	Name  string
}

func (*Column) exprNode()          {}
func (*Column) DataType() DataType { return TypeUnknown }

// NewColumn builds a column reference.
func NewColumn(table, name string) (*Column, error) {
	if name == "" {
		return nil, malformed("column", "column name must not be empty")
	}
	return &Column{Table: table, Name: name}, nil
}

// Param is an externally bound parameter hole, numbered from 1 in the order
// the caller will supply values. It is never interpolated as text.
type Param struct {
	Index int
}

func (*Param) exprNode()          {}
func (*Param) DataType() DataType { return TypeUnknown }

// NewParam builds a parameter placeholder.
func NewParam(index int) (*Param, error) {
	if index < 1 {
		return nil, malformed("parameter", "parameter index must be >= 1, got %d", index)
	}
	return &Param{Index: index}, nil
}

// List is a parenthesized value list. It is only legal as the right operand
// of IN; constructors reject it everywhere else.
type List struct {
	Items []Expr
	typ   DataType
}

func (*List) exprNode()            {}
func (l *List) DataType() DataType { return l.typ }

// NewList builds a value list for IN.
func NewList(items ...Expr) (*List, error) {
	if len(items) == 0 {
		return nil, malformed("list", "IN list must not be empty")
	}
	typ := items[0].DataType()
	for _, item := range items {
		if _, ok := item.(*List); ok {
			return nil, malformed("list", "nested value lists are not allowed")
		}
		if item.DataType() != typ {
			typ = TypeUnknown
		}
	}
	return &List{Items: items, typ: typ}, nil
}

// BinaryExpr applies a two-operand operator.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	typ   DataType
}

func (*BinaryExpr) exprNode()            {}
func (e *BinaryExpr) DataType() DataType { return e.typ }

// UnaryExpr applies a one-operand operator.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	typ     DataType
}

func (*UnaryExpr) exprNode()            {}
func (e *UnaryExpr) DataType() DataType { return e.typ }

// FuncCall applies a dialect-neutral logical function. The name is resolved
// to dialect syntax only at render time; names absent from the catalog are
// allowed here and yield TypeUnknown.
type FuncCall struct {
	Name string
	Args []Expr
	typ  DataType
}

func (*FuncCall) exprNode()            {}
func (f *FuncCall) DataType() DataType { return f.typ }

// Subquery is a single-column SELECT usable as a scalar or row-set value.
type Subquery struct {
	Stmt *SelectStmt
}

func (*Subquery) exprNode() {}

func (s *Subquery) DataType() DataType {
	if len(s.Stmt.Columns) == 1 {
		return s.Stmt.Columns[0].Expr.DataType()
	}
	return TypeUnknown
}

// NewSubquery wraps a SELECT as a value expression. The inner statement
// must project exactly one column so the value has a well-defined shape.
func NewSubquery(stmt *SelectStmt) (*Subquery, error) {
	if stmt == nil {
		return nil, malformed("subquery", "subquery statement must not be nil")
	}
	if len(stmt.Columns) != 1 {
		return nil, malformed("subquery", "subquery must select exactly one column, got %d", len(stmt.Columns))
	}
	return &Subquery{Stmt: stmt}, nil
}

// booleanish reports whether an expression can stand where a boolean is
// required. Unknown passes: columns and parameters have no schema type.
func booleanish(t DataType) bool {
	return t == TypeBool || t == TypeUnknown || t == TypeNull
}

func numericish(t DataType) bool {
	return t == TypeNumeric || t == TypeUnknown || t == TypeNull
}

func textish(t DataType) bool {
	return t == TypeText || t == TypeUnknown || t == TypeNull
}

func comparableTypes(a, b DataType) bool {
	return a == b || a == TypeUnknown || b == TypeUnknown || a == TypeNull || b == TypeNull
}

// widen picks the wider of two inferred types for arithmetic results.
func widen(a, b DataType) DataType {
	if a == TypeUnknown || b == TypeUnknown {
		return TypeUnknown
	}
	return TypeNumeric
}

// NewBinary builds an operator application, checking operand types against
// the operator's meaning. Failures surface here, at build time, not at
// render time.
func NewBinary(op BinaryOp, left, right Expr) (*BinaryExpr, error) {
	if left == nil || right == nil {
		return nil, malformed("expression", "operator %s requires two operands", op)
	}
	if _, ok := left.(*List); ok {
		return nil, malformed("expression", "value list is not a valid left operand for %s", op)
	}
	if _, ok := right.(*List); ok && op != OpIn {
		return nil, malformed("expression", "value list is only valid as the right operand of IN")
	}

	lt, rt := left.DataType(), right.DataType()
	var typ DataType
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		if !comparableTypes(lt, rt) {
			return nil, &TypeMismatchError{Op: string(op), Want: lt, Got: rt}
		}
		typ = TypeBool
	case OpAnd, OpOr:
		if !booleanish(lt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeBool, Got: lt}
		}
		if !booleanish(rt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeBool, Got: rt}
		}
		typ = TypeBool
	case OpAdd, OpSub, OpMul, OpDiv:
		if !numericish(lt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeNumeric, Got: lt}
		}
		if !numericish(rt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeNumeric, Got: rt}
		}
		typ = widen(lt, rt)
	case OpLike:
		if !textish(lt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeText, Got: lt}
		}
		if !textish(rt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeText, Got: rt}
		}
		typ = TypeBool
	case OpIn:
		switch r := right.(type) {
		case *List:
			for _, item := range r.Items {
				if !comparableTypes(lt, item.DataType()) {
					return nil, &TypeMismatchError{Op: string(op), Want: lt, Got: item.DataType()}
				}
			}
		case *Subquery:
			if !comparableTypes(lt, r.DataType()) {
				return nil, &TypeMismatchError{Op: string(op), Want: lt, Got: r.DataType()}
			}
		default:
			return nil, malformed("expression", "IN requires a value list or subquery on the right")
		}
		typ = TypeBool
	case OpConcat:
		if !textish(lt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeText, Got: lt}
		}
		if !textish(rt) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeText, Got: rt}
		}
		typ = TypeText
	default:
		return nil, malformed("expression", "unknown binary operator %q", op)
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, typ: typ}, nil
}

// NewUnary builds a one-operand operator application.
func NewUnary(op UnaryOp, operand Expr) (*UnaryExpr, error) {
	if operand == nil {
		return nil, malformed("expression", "operator %s requires an operand", op)
	}
	if _, ok := operand.(*List); ok {
		return nil, malformed("expression", "value list is not a valid operand for %s", op)
	}

	t := operand.DataType()
	var typ DataType
	switch op {
	case OpNot:
		if !booleanish(t) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeBool, Got: t}
		}
		typ = TypeBool
	case OpNeg:
		if !numericish(t) {
			return nil, &TypeMismatchError{Op: string(op), Want: TypeNumeric, Got: t}
		}
		typ = t
	case OpIsNull, OpIsNotNull:
		typ = TypeBool
	default:
		return nil, malformed("expression", "unknown unary operator %q", op)
	}
	return &UnaryExpr{Op: op, Operand: operand, typ: typ}, nil
}

// NewFunc builds a logical function call. Known names are arity-checked
// against the catalog; unknown names are permitted and typed TypeUnknown,
// deferring support questions to the dialect at render time.
func NewFunc(name string, args ...Expr) (*FuncCall, error) {
	if name == "" {
		return nil, malformed("function", "function name must not be empty")
	}
	for _, arg := range args {
		if arg == nil {
			return nil, malformed("function", "%s: nil argument", name)
		}
		if _, ok := arg.(*List); ok {
			return nil, malformed("function", "%s: value list is not a valid argument", name)
		}
	}
	typ := TypeUnknown
	if sig, ok := Functions[name]; ok {
		if sig.Arity >= 0 && len(args) != sig.Arity {
			return nil, malformed("function", "%s takes %d argument(s), got %d", name, sig.Arity, len(args))
		}
		typ = sig.Result
	}
	return &FuncCall{Name: name, Args: args, typ: typ}, nil
}
