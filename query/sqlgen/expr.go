package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/dialect"
)

// precAtom is the precedence of expressions that are never ambiguous:
// columns, literals, placeholders, function calls, parenthesized subqueries.
const precAtom = ast.PrecUnary + 1

// writer accumulates SQL text and the parameter list for one render call.
type writer struct {
	d    *dialect.Dialect
	sb   *strings.Builder
	args []any
	n    int // placeholder counter
}

func newWriter(d *dialect.Dialect) *writer {
	return &writer{d: d, sb: new(strings.Builder)}
}

func (w *writer) write(s string) {
	w.sb.WriteString(s)
}

// placeholder appends a value to the argument list and writes the next
// placeholder token.
func (w *writer) placeholder(value any) {
	w.n++
	w.args = append(w.args, value)
	w.write(w.d.PlaceholderToken(w.n))
}

func exprPrecedence(e ast.Expr) int {
	switch v := e.(type) {
	case *ast.BinaryExpr:
		return v.Op.Precedence()
	case *ast.UnaryExpr:
		return v.Op.Precedence()
	default:
		return precAtom
	}
}

// writeChild renders a child expression, parenthesizing it exactly when
// its operator binds looser than the parent's, or equally when parenEqual
// is set. This is the rule that keeps nested trees grouped identically
// under every dialect.
func (w *writer) writeChild(child ast.Expr, parentPrec int, parenEqual bool) error {
	childPrec := exprPrecedence(child)
	needParens := childPrec < parentPrec || (childPrec == parentPrec && parenEqual)
	if needParens {
		w.write("(")
	}
	if err := w.writeExpr(child); err != nil {
		return err
	}
	if needParens {
		w.write(")")
	}
	return nil
}

func (w *writer) writeExpr(e ast.Expr) error {
	switch v := e.(type) {
	case *ast.Literal:
		return w.writeLiteral(v)
	case *ast.Column:
		w.writeColumn(v)
		return nil
	case *ast.Param:
		w.placeholder(BoundParam{Index: v.Index})
		return nil
	case *ast.BinaryExpr:
		return w.writeBinary(v)
	case *ast.UnaryExpr:
		return w.writeUnary(v)
	case *ast.FuncCall:
		return w.writeFunc(v.Name, v.Args)
	case *ast.Subquery:
		w.write("(")
		if err := w.writeSelect(v.Stmt); err != nil {
			return err
		}
		w.write(")")
		return nil
	case *ast.List:
		return w.writeList(v)
	default:
		return fmt.Errorf("unknown expression type %T", e)
	}
}

// writeLiteral parameterizes every value. The only inline exceptions are
// NULL and booleans: both are closed token sets chosen by the dialect, so
// no caller-supplied text can reach the SQL string through them.
func (w *writer) writeLiteral(l *ast.Literal) error {
	switch l.Kind {
	case ast.KindNull:
		w.write("NULL")
	case ast.KindBool:
		w.write(w.d.BoolToken(l.Value.(bool)))
	default:
		w.placeholder(l.Value)
	}
	return nil
}

func (w *writer) writeColumn(c *ast.Column) {
	if c.Table != "" {
		w.write(w.d.QuoteIdent(c.Table))
		w.write(".")
	}
	w.write(w.d.QuoteIdent(c.Name))
}

func (w *writer) writeBinary(e *ast.BinaryExpr) error {
	if e.Op == ast.OpIn {
		return w.writeIn(e)
	}
	tok, ok := w.d.Operator(e.Op)
	if !ok {
		// An operator the dialect spells as a function or pattern instead
		// of an infix token, e.g. CONCAT.
		return w.writeFunc(string(e.Op), []ast.Expr{e.Left, e.Right})
	}
	prec := e.Op.Precedence()
	if err := w.writeChild(e.Left, prec, false); err != nil {
		return err
	}
	w.write(" " + tok + " ")
	return w.writeChild(e.Right, prec, rightNeedsGrouping(e.Op, e.Right))
}

// rightNeedsGrouping reports whether an equal-precedence right child must
// keep its parentheses. SQL evaluates equal-precedence chains left to
// right, so a right-nested child regroups unless it repeats the same
// associative operator: a AND (b AND c) reads back identically without
// parens, but a * (b / c) does not.
func rightNeedsGrouping(parent ast.BinaryOp, child ast.Expr) bool {
	b, ok := child.(*ast.BinaryExpr)
	if !ok {
		return false
	}
	return b.Op != parent || !parent.Associative()
}

func (w *writer) writeIn(e *ast.BinaryExpr) error {
	tok, ok := w.d.Operator(ast.OpIn)
	if !ok {
		return &UnsupportedOperationError{Dialect: w.d.Name, Operation: string(ast.OpIn)}
	}
	if err := w.writeChild(e.Left, ast.PrecComparison, false); err != nil {
		return err
	}
	w.write(" " + tok + " ")
	// The right side is a value list or subquery; both bring their own
	// parentheses.
	return w.writeExpr(e.Right)
}

func (w *writer) writeList(l *ast.List) error {
	w.write("(")
	for i, item := range l.Items {
		if i > 0 {
			w.write(", ")
		}
		if err := w.writeExpr(item); err != nil {
			return err
		}
	}
	w.write(")")
	return nil
}

func (w *writer) writeUnary(e *ast.UnaryExpr) error {
	tok, ok := w.d.UnaryOperator(e.Op)
	if !ok {
		return &UnsupportedOperationError{Dialect: w.d.Name, Operation: string(e.Op)}
	}
	prec := e.Op.Precedence()
	switch e.Op {
	case ast.OpIsNull, ast.OpIsNotNull:
		// Engines bind the postfix form tighter than comparison (or reject
		// an ungrouped comparison operand outright), so an equal-precedence
		// operand keeps its parentheses.
		if err := w.writeChild(e.Operand, prec, true); err != nil {
			return err
		}
		w.write(" " + tok)
	case ast.OpNeg:
		// A doubled minus would read as a line comment.
		w.write(tok)
		return w.writeChild(e.Operand, prec, true)
	default:
		w.write(tok + " ")
		return w.writeChild(e.Operand, prec, false)
	}
	return nil
}

// writeFunc resolves a logical function name through the dialect's table
// and splices the rendered arguments into its pattern. Compound arguments
// are parenthesized so patterns that expand to operators (CONCAT as "+" or
// "||") cannot regroup them.
func (w *writer) writeFunc(name string, args []ast.Expr) error {
	pattern, ok := w.d.Function(name)
	if !ok {
		return &UnsupportedOperationError{Dialect: w.d.Name, Operation: name}
	}
	if got := strings.Count(pattern, "%s"); got != len(args) {
		return fmt.Errorf("dialect %s: pattern for %s takes %d argument(s), got %d",
			w.d.Name, name, got, len(args))
	}
	rendered := make([]any, len(args))
	for i, arg := range args {
		s, err := w.captureExpr(arg)
		if err != nil {
			return err
		}
		if exprPrecedence(arg) < precAtom {
			s = "(" + s + ")"
		}
		rendered[i] = s
	}
	w.write(fmt.Sprintf(pattern, rendered...))
	return nil
}

// captureExpr renders an expression to a string while keeping the shared
// parameter list and placeholder counter advancing, so argument order in
// Args still follows tree order.
func (w *writer) captureExpr(e ast.Expr) (string, error) {
	saved := w.sb
	w.sb = new(strings.Builder)
	err := w.writeExpr(e)
	out := w.sb.String()
	w.sb = saved
	return out, err
}
