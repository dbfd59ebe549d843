// Package dialect describes SQL dialects as immutable lookup tables.
//
// A Dialect carries no behavior beyond accessors: quoting, placeholder
// tokens, pagination shape, and operator/function spellings are all plain
// data. Adding a dialect is data registration, never subclassing, so the
// renderer does not change when a dialect is added.
package dialect

import (
	"fmt"
	"strings"

	"github.com/sqlbridge/sqlbridge/query/ast"
)

// PlaceholderStyle selects how bound-parameter holes are written.
type PlaceholderStyle string

const (
	// PlaceholderQuestion emits "?" for every parameter.
	PlaceholderQuestion PlaceholderStyle = "question"
	// PlaceholderDollar emits "$1", "$2", ...
	PlaceholderDollar PlaceholderStyle = "dollar"
	// PlaceholderAt emits "@p1", "@p2", ...
	PlaceholderAt PlaceholderStyle = "at"
	// PlaceholderColon emits ":1", ":2", ...
	PlaceholderColon PlaceholderStyle = "colon"
)

// PaginationStyle selects both the syntax and the position of the row-cap
// clause. This is a tagged variant rather than a template because the
// clause lands in different places: TOP goes inside the SELECT list while
// the other two trail the statement.
type PaginationStyle string

const (
	// PaginationLimitOffset renders "LIMIT n OFFSET m" at the end.
	PaginationLimitOffset PaginationStyle = "limit-offset"
	// PaginationOffsetFetch renders "OFFSET m ROWS FETCH NEXT n ROWS ONLY".
	PaginationOffsetFetch PaginationStyle = "offset-fetch"
	// PaginationTopSelect renders "TOP n" in the SELECT clause. Dialects
	// using it have no OFFSET form; rendering an offset fails.
	PaginationTopSelect PaginationStyle = "top"
)

// IdentCase records how the engine folds unquoted identifiers. The renderer
// quotes every identifier regardless; the field is informational for
// callers inspecting a descriptor.
type IdentCase string

const (
	IdentCasePreserve IdentCase = "preserve"
	IdentCaseLower    IdentCase = "lower"
	IdentCaseUpper    IdentCase = "upper"
)

// Dialect is the capability table for one database family. Descriptors are
// constructed once, registered by name, and never mutated afterwards; they
// are safe for unlimited concurrent reads.
type Dialect struct {
	Name    string
	Aliases []string

	// Identifier quoting pair. A closing-quote character inside an
	// identifier is escaped by doubling it.
	QuoteOpen  string
	QuoteClose string

	Placeholder PlaceholderStyle
	Pagination  PaginationStyle
	IdentFold   IdentCase

	// True/False spellings for inline boolean literals.
	TrueLiteral  string
	FalseLiteral string

	// Operators maps logical binary operators to dialect tokens. A logical
	// operator absent here may still render through Functions (CONCAT is an
	// operator in one dialect and a function in another).
	Operators      map[ast.BinaryOp]string
	UnaryOperators map[ast.UnaryOp]string

	// Functions maps logical function names to fmt-style render patterns,
	// one %s per argument, e.g. "LEN(%s)" or "%s || %s".
	Functions map[string]string
}

// QuoteIdent quotes an identifier with the dialect's quoting pair, escaping
// embedded closing quotes by doubling. Quoting is applied uniformly to all
// identifiers; no reserved-word list is consulted.
func (d *Dialect) QuoteIdent(name string) string {
	escaped := strings.ReplaceAll(name, d.QuoteClose, d.QuoteClose+d.QuoteClose)
	return d.QuoteOpen + escaped + d.QuoteClose
}

// PlaceholderToken returns the token for the n-th parameter (1-based).
func (d *Dialect) PlaceholderToken(n int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return fmt.Sprintf("$%d", n)
	case PlaceholderAt:
		return fmt.Sprintf("@p%d", n)
	case PlaceholderColon:
		return fmt.Sprintf(":%d", n)
	default:
		return "?"
	}
}

// BoolToken returns the dialect spelling of a boolean literal.
func (d *Dialect) BoolToken(v bool) string {
	if v {
		return d.TrueLiteral
	}
	return d.FalseLiteral
}

// Operator returns the dialect token for a binary operator.
func (d *Dialect) Operator(op ast.BinaryOp) (string, bool) {
	tok, ok := d.Operators[op]
	return tok, ok
}

// UnaryOperator returns the dialect token for a unary operator.
func (d *Dialect) UnaryOperator(op ast.UnaryOp) (string, bool) {
	tok, ok := d.UnaryOperators[op]
	return tok, ok
}

// Function returns the render pattern for a logical function name.
func (d *Dialect) Function(name string) (string, bool) {
	pattern, ok := d.Functions[name]
	return pattern, ok
}
