package dialect

import "github.com/sqlbridge/sqlbridge/query/ast"

// Every built-in dialect gets its own operator maps so descriptors never
// share mutable state.

func standardOperators() map[ast.BinaryOp]string {
	return map[ast.BinaryOp]string{
		ast.OpEq:   "=",
		ast.OpNe:   "<>",
		ast.OpLt:   "<",
		ast.OpLe:   "<=",
		ast.OpGt:   ">",
		ast.OpGe:   ">=",
		ast.OpAnd:  "AND",
		ast.OpOr:   "OR",
		ast.OpAdd:  "+",
		ast.OpSub:  "-",
		ast.OpMul:  "*",
		ast.OpDiv:  "/",
		ast.OpLike: "LIKE",
		ast.OpIn:   "IN",
	}
}

func standardUnaryOperators() map[ast.UnaryOp]string {
	return map[ast.UnaryOp]string{
		ast.OpNot:       "NOT",
		ast.OpNeg:       "-",
		ast.OpIsNull:    "IS NULL",
		ast.OpIsNotNull: "IS NOT NULL",
	}
}

func standardAggregates() map[string]string {
	return map[string]string{
		"COUNT": "COUNT(%s)",
		"SUM":   "SUM(%s)",
		"AVG":   "AVG(%s)",
		"MIN":   "MIN(%s)",
		"MAX":   "MAX(%s)",
		"ABS":   "ABS(%s)",
		"ROUND": "ROUND(%s, %s)",
		"UPPER": "UPPER(%s)",
		"LOWER": "LOWER(%s)",
		"IF":    "CASE WHEN %s THEN %s ELSE %s END",
	}
}

func merge(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ANSI is the portable baseline: standard quoting, question-mark
// placeholders, LIMIT/OFFSET pagination.
var ANSI = &Dialect{
	Name:           "ansi",
	QuoteOpen:      `"`,
	QuoteClose:     `"`,
	Placeholder:    PlaceholderQuestion,
	Pagination:     PaginationLimitOffset,
	IdentFold:      IdentCaseUpper,
	TrueLiteral:    "TRUE",
	FalseLiteral:   "FALSE",
	Operators:      standardOperators(),
	UnaryOperators: standardUnaryOperators(),
	Functions:      merge(standardAggregates(), map[string]string{
		"CURRENT_TIMESTAMP": "CURRENT_TIMESTAMP",
		"CONCAT":            "%s || %s",
		"LENGTH":            "CHARACTER_LENGTH(%s)",
		"SUBSTRING":         "SUBSTRING(%s FROM %s FOR %s)",
	}),
}

// Postgres targets PostgreSQL: numbered dollar placeholders and native
// booleans.
var Postgres = &Dialect{
	Name:           "postgres",
	Aliases:        []string{"postgresql", "pgsql"},
	QuoteOpen:      `"`,
	QuoteClose:     `"`,
	Placeholder:    PlaceholderDollar,
	Pagination:     PaginationLimitOffset,
	IdentFold:      IdentCaseLower,
	TrueLiteral:    "TRUE",
	FalseLiteral:   "FALSE",
	Operators:      standardOperators(),
	UnaryOperators: standardUnaryOperators(),
	Functions:      merge(standardAggregates(), map[string]string{
		"CURRENT_TIMESTAMP": "CURRENT_TIMESTAMP",
		"GUID":              "GEN_RANDOM_UUID()",
		"VERSION":           "VERSION()",
		"CONCAT":            "%s || %s",
		"LENGTH":            "LENGTH(%s)",
		"FORMAT":            "TO_CHAR(%s, %s)",
		"SUBSTRING":         "SUBSTRING(%s FROM %s FOR %s)",
	}),
}

// MySQL targets MySQL/MariaDB: backtick quoting and 1/0 booleans. String
// concatenation is a function here, not an operator.
var MySQL = &Dialect{
	Name:           "mysql",
	Aliases:        []string{"mariadb"},
	QuoteOpen:      "`",
	QuoteClose:     "`",
	Placeholder:    PlaceholderQuestion,
	Pagination:     PaginationLimitOffset,
	IdentFold:      IdentCasePreserve,
	TrueLiteral:    "1",
	FalseLiteral:   "0",
	Operators:      standardOperators(),
	UnaryOperators: standardUnaryOperators(),
	Functions:      merge(standardAggregates(), map[string]string{
		"CURRENT_TIMESTAMP": "NOW()",
		"GUID":              "UUID()",
		"VERSION":           "VERSION()",
		"CONCAT":            "CONCAT(%s, %s)",
		"LENGTH":            "CHAR_LENGTH(%s)",
		"FORMAT":            "DATE_FORMAT(%s, %s)",
		"SUBSTRING":         "SUBSTRING(%s, %s, %s)",
	}),
}

// SQLite targets SQLite: no native booleans, no GUID or FORMAT function, so
// those logical names fail under this dialect at render time.
var SQLite = &Dialect{
	Name:           "sqlite",
	Aliases:        []string{"sqlite3"},
	QuoteOpen:      `"`,
	QuoteClose:     `"`,
	Placeholder:    PlaceholderQuestion,
	Pagination:     PaginationLimitOffset,
	IdentFold:      IdentCasePreserve,
	TrueLiteral:    "1",
	FalseLiteral:   "0",
	Operators:      standardOperators(),
	UnaryOperators: standardUnaryOperators(),
	Functions:      merge(standardAggregates(), map[string]string{
		"CURRENT_TIMESTAMP": "CURRENT_TIMESTAMP",
		"VERSION":           "SQLITE_VERSION()",
		"CONCAT":            "%s || %s",
		"LENGTH":            "LENGTH(%s)",
		"SUBSTRING":         "SUBSTR(%s, %s, %s)",
	}),
}

// SQLServer targets the T-SQL family: bracket quoting, @p1 placeholders,
// TOP-in-select pagination, + for string concatenation.
var SQLServer = &Dialect{
	Name:           "sqlserver",
	Aliases:        []string{"mssql", "tsql"},
	QuoteOpen:      "[",
	QuoteClose:     "]",
	Placeholder:    PlaceholderAt,
	Pagination:     PaginationTopSelect,
	IdentFold:      IdentCasePreserve,
	TrueLiteral:    "1",
	FalseLiteral:   "0",
	Operators:      standardOperators(),
	UnaryOperators: standardUnaryOperators(),
	Functions:      merge(standardAggregates(), map[string]string{
		"CURRENT_TIMESTAMP": "GETDATE()",
		"GUID":              "NEWID()",
		"VERSION":           "@@VERSION",
		"CONCAT":            "%s + %s",
		"LENGTH":            "LEN(%s)",
		"FORMAT":            "FORMAT(%s, %s)",
		"SUBSTRING":         "SUBSTRING(%s, %s, %s)",
	}),
}
