package ast

// FuncSig describes a logical function: how many arguments it takes and the
// semantic type it yields. Arity -1 means variadic.
//
// The catalog is dialect-neutral on purpose: build-time type inference must
// not depend on which dialect the statement is eventually rendered under.
// Dialects separately declare how each name is spelled; a name missing from
// a dialect's table fails at render time, not here.
type FuncSig struct {
	Arity  int
	Result DataType
}

// Functions is the catalog of known logical function names.
var Functions = map[string]FuncSig{
	// nullary
	"CURRENT_TIMESTAMP": {Arity: 0, Result: TypeDatetime},
	"GUID":              {Arity: 0, Result: TypeText},
	"VERSION":           {Arity: 0, Result: TypeText},

	// string
	"UPPER":     {Arity: 1, Result: TypeText},
	"LOWER":     {Arity: 1, Result: TypeText},
	"LENGTH":    {Arity: 1, Result: TypeNumeric},
	"CONCAT":    {Arity: 2, Result: TypeText},
	"SUBSTRING": {Arity: 3, Result: TypeText},
	"FORMAT":    {Arity: 2, Result: TypeText},

	// numeric
	"ABS":   {Arity: 1, Result: TypeNumeric},
	"ROUND": {Arity: 2, Result: TypeNumeric},

	// conditional: IF(cond, then, else) renders as CASE WHEN in dialects
	// without a direct form.
	"IF": {Arity: 3, Result: TypeUnknown},

	// aggregates
	"COUNT": {Arity: 1, Result: TypeNumeric},
	"SUM":   {Arity: 1, Result: TypeNumeric},
	"AVG":   {Arity: 1, Result: TypeNumeric},
	"MIN":   {Arity: 1, Result: TypeUnknown},
	"MAX":   {Arity: 1, Result: TypeUnknown},
}
